package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) UpsertMany(ctx context.Context, users []models.User) error {
	query := `INSERT INTO users (id, name, screen_name, avatar_url)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				screen_name = excluded.screen_name,
				avatar_url = excluded.avatar_url
	`
	for _, u := range users {
		if _, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.ScreenName, u.AvatarURL); err != nil {
			return fmt.Errorf("failed to upsert user %d: %w", u.ID, err)
		}
	}
	return nil
}
