// Package users persists tweet authors in the local cache.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
)

type Repository interface {
	// UpsertMany inserts users or replaces the stored row with the same ID.
	UpsertMany(ctx context.Context, users []models.User) error
}
