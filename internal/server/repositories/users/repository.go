package users

import (
	"context"

	"github.com/dmitrijs2005/gophfeed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetAvatarKey(ctx context.Context, id int64, key string) error
}
