// Package services contains server-side business logic: FeedService serves
// timeline pages and publishes tweets, UserService manages authors, tokens
// and avatars.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/dbx"
	sc "github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/repomanager"
)

// AvatarSigner turns a stored avatar object key into a download link.
type AvatarSigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

type FeedService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pageSize    int
	avatars     AvatarSigner
}

func NewFeedService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config, avatars AvatarSigner) *FeedService {
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	return &FeedService{
		db:          db,
		repomanager: repomanager,
		pageSize:    pageSize,
		avatars:     avatars,
	}
}

// limit caps a requested page size at the configured one. Zero or negative
// means the configured size.
func (s *FeedService) limit(count int) int {
	if count <= 0 || count > s.pageSize {
		return s.pageSize
	}
	return count
}

// Home returns the newest page of the timeline.
func (s *FeedService) Home(ctx context.Context, count int) ([]models.TweetWithUser, error) {
	page, err := s.repomanager.Tweets(s.db).Latest(ctx, s.limit(count))
	if err != nil {
		return nil, fmt.Errorf("error reading timeline: %w", err)
	}
	s.resolveAvatars(ctx, page)
	return page, nil
}

// OlderThan returns the page of tweets strictly older than maxID. An empty
// page means the timeline is exhausted.
func (s *FeedService) OlderThan(ctx context.Context, maxID int64, count int) ([]models.TweetWithUser, error) {
	if maxID <= 0 {
		return nil, common.ErrInvalidCursor
	}
	page, err := s.repomanager.Tweets(s.db).OlderThan(ctx, maxID, s.limit(count))
	if err != nil {
		return nil, fmt.Errorf("error reading timeline: %w", err)
	}
	s.resolveAvatars(ctx, page)
	return page, nil
}

// Publish stores text as a new tweet by userID and returns it with its
// author.
func (s *FeedService) Publish(ctx context.Context, userID int64, text string) (models.TweetWithUser, error) {
	if err := common.ValidateTweetText(text); err != nil {
		return models.TweetWithUser{}, err
	}

	var out models.TweetWithUser
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}

		tweet, err := s.repomanager.Tweets(tx).Create(ctx, &models.Tweet{
			AuthorID: user.ID,
			Body:     strings.TrimSpace(text),
		})
		if err != nil {
			return err
		}

		out = models.TweetWithUser{Tweet: *tweet, User: *user}
		return nil
	})
	if err != nil {
		return models.TweetWithUser{}, fmt.Errorf("error publishing tweet: %w", err)
	}

	page := []models.TweetWithUser{out}
	s.resolveAvatars(ctx, page)
	return page[0], nil
}

// resolveAvatars replaces AvatarURL with a presigned link for every author
// with a stored avatar. Signing failures keep the stored URL.
func (s *FeedService) resolveAvatars(ctx context.Context, page []models.TweetWithUser) {
	if s.avatars == nil {
		return
	}
	signed := map[string]string{}
	for i := range page {
		key := page[i].User.AvatarKey
		if key == "" {
			continue
		}
		url, ok := signed[key]
		if !ok {
			var err error
			if url, err = s.avatars.PresignGet(ctx, key); err != nil {
				continue
			}
			signed[key] = url
		}
		page[i].User.AvatarURL = url
	}
}
