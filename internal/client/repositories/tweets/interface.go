package tweets

import (
	"context"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
)

// Repository describes storage operations for cached tweets.
type Repository interface {
	// UpsertMany inserts tweets or replaces the stored row with the same ID.
	UpsertMany(ctx context.Context, tweets []models.Tweet) error

	// Recent returns at most limit tweets, newest first, joined with authors.
	Recent(ctx context.Context, limit int) ([]models.TweetWithUser, error)

	// Count returns the number of cached tweets.
	Count(ctx context.Context) (int, error)
}
