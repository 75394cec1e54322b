package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/server/auth"
	sc "github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, rm *fakeRepoManager, up AvatarUploader) *UserService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &sc.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	return NewUserService(db, rm, cfg, up)
}

func TestUserService_Create(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newUserService(t, rm, nil)

	u, err := svc.Create(context.Background(), " Ann Lee ", "@ann")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Ann Lee", u.Name)
	assert.Equal(t, "ann", u.ScreenName)

	_, err = svc.Create(context.Background(), "", "x")
	assert.Error(t, err)

	rm.users.createErr = errBoom
	_, err = svc.Create(context.Background(), "Bob", "bob")
	assert.ErrorIs(t, err, errBoom)
}

func TestUserService_IssueToken(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byID[7] = &models.User{ID: 7}
	svc := newUserService(t, rm, nil)

	tok, err := svc.IssueToken(context.Background(), 7)
	require.NoError(t, err)

	id, err := auth.GetUserIDFromToken(tok, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = svc.IssueToken(context.Background(), 8)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserService_SetAvatar(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byID[7] = &models.User{ID: 7}
	svc := newUserService(t, rm, &fakeUploader{key: "avatars/7/x", url: "http://put"})

	var gotURL, gotCT string
	var gotBody []byte
	svc.upload = func(ctx context.Context, url, contentType string, body []byte) error {
		gotURL, gotCT, gotBody = url, contentType, body
		return nil
	}

	key, err := svc.SetAvatar(context.Background(), 7, "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "avatars/7/x", key)
	assert.Equal(t, "http://put", gotURL)
	assert.Equal(t, "image/png", gotCT)
	assert.Equal(t, []byte("png"), gotBody)
	assert.Equal(t, "avatars/7/x", rm.users.byID[7].AvatarKey)
}

func TestUserService_SetAvatarFailures(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byID[7] = &models.User{ID: 7}

	svc := newUserService(t, rm, &fakeUploader{err: errBoom})
	_, err := svc.SetAvatar(context.Background(), 7, "", nil)
	assert.ErrorIs(t, err, errBoom)

	svc = newUserService(t, rm, &fakeUploader{key: "k", url: "u"})
	svc.upload = func(context.Context, string, string, []byte) error { return errBoom }
	_, err = svc.SetAvatar(context.Background(), 7, "", nil)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, rm.users.byID[7].AvatarKey, "key is stored only after upload")

	_, err = svc.SetAvatar(context.Background(), 99, "", nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
