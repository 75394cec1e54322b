package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/dbx"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/tweets"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeRepoManager struct {
	users  *fakeUsersRepo
	tweets *fakeTweetsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:  &fakeUsersRepo{byID: map[int64]*models.User{}},
		tweets: &fakeTweetsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Tweets(dbx.DBTX) tweets.Repository            { return m.tweets }

type fakeUsersRepo struct {
	byID      map[int64]*models.User
	nextID    int64
	createErr error
	avatarKey map[int64]string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) SetAvatarKey(ctx context.Context, id int64, key string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.AvatarKey = key
	return nil
}

type fakeTweetsRepo struct {
	page      []models.TweetWithUser
	err       error
	gotLimit  int
	gotMaxID  int64
	created   []models.Tweet
	createErr error
}

func (f *fakeTweetsRepo) Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	t.ID = int64(100 + len(f.created))
	f.created = append(f.created, *t)
	return t, nil
}

func (f *fakeTweetsRepo) Latest(ctx context.Context, limit int) ([]models.TweetWithUser, error) {
	f.gotLimit = limit
	return f.clone(), f.err
}

func (f *fakeTweetsRepo) OlderThan(ctx context.Context, maxID int64, limit int) ([]models.TweetWithUser, error) {
	f.gotLimit, f.gotMaxID = limit, maxID
	return f.clone(), f.err
}

func (f *fakeTweetsRepo) clone() []models.TweetWithUser {
	if f.err != nil {
		return nil
	}
	return append([]models.TweetWithUser{}, f.page...)
}

type fakeSigner struct {
	calls map[string]int
	err   error
}

func (f *fakeSigner) PresignGet(ctx context.Context, key string) (string, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[key]++
	if f.err != nil {
		return "", f.err
	}
	return "https://signed/" + key, nil
}

type fakeUploader struct {
	key, url string
	err      error
}

func (f *fakeUploader) PresignPut(ctx context.Context, userID int64) (string, string, error) {
	return f.key, f.url, f.err
}

var errBoom = errors.New("boom")
