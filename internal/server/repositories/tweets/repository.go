package tweets

import (
	"context"

	"github.com/dmitrijs2005/gophfeed/internal/server/models"
)

// Repository reads pages of the global timeline, newest first.
type Repository interface {
	Create(ctx context.Context, tweet *models.Tweet) (*models.Tweet, error)
	Latest(ctx context.Context, limit int) ([]models.TweetWithUser, error)
	OlderThan(ctx context.Context, maxID int64, limit int) ([]models.TweetWithUser, error)
}
