package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophfeed/internal/dbx"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/tweets"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tweets(db dbx.DBTX) tweets.Repository
}
