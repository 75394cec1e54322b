package client

import (
	"context"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
)

// Client is the remote feed. Pages are newest first; an empty page from
// FetchOlderThan means there is nothing older.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	FetchHome(ctx context.Context) ([]models.TweetWithUser, error)
	FetchOlderThan(ctx context.Context, cursorID int64) ([]models.TweetWithUser, error)
	Publish(ctx context.Context, text string) (models.TweetWithUser, error)
}
