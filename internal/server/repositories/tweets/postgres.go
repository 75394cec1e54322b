package tweets

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/dbx"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectJoined = `SELECT t.id, t.author_id, t.body, t.created_at,
			u.id, u.name, u.screen_name, u.avatar_url, u.avatar_key
		 FROM tweets t
		 JOIN users u ON u.id = t.author_id
		 `

func (r *PostgresRepository) Create(ctx context.Context, tweet *models.Tweet) (*models.Tweet, error) {

	query :=
		`INSERT INTO tweets (author_id, body)
         VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, tweet.AuthorID, tweet.Body).Scan(&tweet.ID, &tweet.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tweet, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, limit int) ([]models.TweetWithUser, error) {
	query := selectJoined +
		`ORDER BY t.id DESC
		 LIMIT $1`

	return r.list(ctx, query, limit)
}

// OlderThan returns tweets with an ID strictly below maxID.
func (r *PostgresRepository) OlderThan(ctx context.Context, maxID int64, limit int) ([]models.TweetWithUser, error) {
	query := selectJoined +
		`WHERE t.id < $1
		 ORDER BY t.id DESC
		 LIMIT $2`

	return r.list(ctx, query, maxID, limit)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.TweetWithUser, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.TweetWithUser{}
	for rows.Next() {
		var item models.TweetWithUser
		if err := rows.Scan(&item.Tweet.ID, &item.Tweet.AuthorID, &item.Tweet.Body, &item.Tweet.CreatedAt,
			&item.User.ID, &item.User.Name, &item.User.ScreenName, &item.User.AvatarURL, &item.User.AvatarKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
