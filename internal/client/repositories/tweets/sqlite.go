package tweets

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// UpsertMany writes every tweet; an existing row is fully replaced.
// Callers wanting all-or-nothing semantics pass a transaction.
func (r *SQLiteRepository) UpsertMany(ctx context.Context, tweets []models.Tweet) error {
	query := `INSERT INTO tweets (id, body, created_at, author_id)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET body = excluded.body,
				created_at = excluded.created_at,
				author_id = excluded.author_id
	`
	for _, t := range tweets {
		_, err := r.db.ExecContext(ctx, query, t.ID, t.Body, t.CreatedAt.UnixMilli(), t.AuthorID)
		if err != nil {
			return fmt.Errorf("failed to upsert tweet %d: %w", t.ID, err)
		}
	}
	return nil
}

// Recent lists the newest tweets with their authors resolved.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.TweetWithUser, error) {
	if limit <= 0 {
		return []models.TweetWithUser{}, nil
	}

	query := `SELECT t.id, t.body, t.created_at, t.author_id,
				COALESCE(u.id, 0), COALESCE(u.name, ''), COALESCE(u.screen_name, ''), COALESCE(u.avatar_url, '')
			FROM tweets t
			LEFT JOIN users u ON u.id = t.author_id
			ORDER BY t.id DESC
			LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select tweets: %w", err)
	}
	defer rows.Close()

	result := make([]models.TweetWithUser, 0, limit)
	for rows.Next() {
		var item models.TweetWithUser
		var createdAt int64
		if err := rows.Scan(&item.Tweet.ID, &item.Tweet.Body, &createdAt, &item.Tweet.AuthorID,
			&item.User.ID, &item.User.Name, &item.User.ScreenName, &item.User.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan tweet row: %w", err)
		}
		item.Tweet.CreatedAt = time.UnixMilli(createdAt).UTC()
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tweets: %w", err)
	}
	return n, nil
}
