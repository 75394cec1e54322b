package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/netx"
	"github.com/dmitrijs2005/gophfeed/internal/server/auth"
	sc "github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/repomanager"
)

// AvatarUploader hands out upload links for new avatar objects.
type AvatarUploader interface {
	PresignPut(ctx context.Context, userID int64) (key string, url string, err error)
}

// UserService provides the administrative operations on authors:
// - Create: register an author
// - IssueToken: mint an access token for an existing author
// - SetAvatar: upload an image and point the author at it
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	avatars                     AvatarUploader

	// seam
	upload func(ctx context.Context, url, contentType string, body []byte) error
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config, avatars AvatarUploader) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		avatars:                     avatars,
		upload:                      netx.UploadToPresignedURL,
	}
}

// Create registers an author. Both names are required.
func (s *UserService) Create(ctx context.Context, name, screenName string) (*models.User, error) {
	name, screenName = strings.TrimSpace(name), strings.TrimPrefix(strings.TrimSpace(screenName), "@")
	if name == "" || screenName == "" {
		return nil, fmt.Errorf("name and screen name are required")
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Name: name, ScreenName: screenName})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// IssueToken returns an access token for userID after checking the user
// exists.
func (s *UserService) IssueToken(ctx context.Context, userID int64) (string, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return "", fmt.Errorf("error searching user: %w", err)
	}

	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// SetAvatar uploads image to a fresh object and stores its key on the user.
func (s *UserService) SetAvatar(ctx context.Context, userID int64, contentType string, image []byte) (string, error) {
	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByID(ctx, userID); err != nil {
		return "", fmt.Errorf("error searching user: %w", err)
	}

	key, url, err := s.avatars.PresignPut(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("error presigning upload: %w", err)
	}

	if err := s.upload(ctx, url, contentType, image); err != nil {
		return "", fmt.Errorf("error uploading avatar: %w", err)
	}

	if err := repo.SetAvatarKey(ctx, userID, key); err != nil {
		return "", fmt.Errorf("error saving avatar key: %w", err)
	}
	return key, nil
}
