package tweets

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  screen_name TEXT NOT NULL,
  avatar_url TEXT NOT NULL DEFAULT ''
);
CREATE TABLE tweets (
  id INTEGER PRIMARY KEY,
  body TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  author_id INTEGER NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func at(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

func TestUpsertMany_InsertAndReplace(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.UpsertMany(ctx, []models.Tweet{
		{ID: 1, Body: "first", CreatedAt: at(100), AuthorID: 7},
	}))

	got, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Tweet{ID: 1, Body: "first", CreatedAt: at(100), AuthorID: 7}, got[0].Tweet)

	// same id, every column replaced
	require.NoError(t, r.UpsertMany(ctx, []models.Tweet{
		{ID: 1, Body: "edited", CreatedAt: at(200), AuthorID: 8},
	}))

	got, err = r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Tweet{ID: 1, Body: "edited", CreatedAt: at(200), AuthorID: 8}, got[0].Tweet)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecent_NewestFirstWithLimitAndJoin(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO users(id, name, screen_name, avatar_url) VALUES
	  (1, 'Alice', 'alice', 'https://a/1.png'),
	  (2, 'Bob', 'bob', '')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tweets(id, body, created_at, author_id) VALUES
	  (3, 'three', 3000, 1),
	  (5, 'five', 5000, 2),
	  (4, 'four', 4000, 1)`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	got, err := r.Recent(ctx, 2)
	require.NoError(t, err)

	require.Equal(t, []int64{5, 4}, models.IDs(got))
	assert.Equal(t, models.User{ID: 2, Name: "Bob", ScreenName: "bob"}, got[0].User)
	assert.Equal(t, "https://a/1.png", got[1].User.AvatarURL)
	assert.Equal(t, time.UnixMilli(4000).UTC(), got[1].Tweet.CreatedAt)
}

func TestRecent_MissingAuthorYieldsZeroUser(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO tweets(id, body, created_at, author_id) VALUES (1, 'orphan', 1, 99)`)
	require.NoError(t, err)

	got, err := NewSQLiteRepository(db).Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(99), got[0].Tweet.AuthorID)
	assert.Equal(t, models.User{}, got[0].User)
}

func TestRecent_NonPositiveLimit(t *testing.T) {
	db := setupDB(t)
	got, err := NewSQLiteRepository(db).Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCount_Empty(t *testing.T) {
	n, err := NewSQLiteRepository(setupDB(t)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpsertMany_ErrorOnMissingTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = NewSQLiteRepository(db).UpsertMany(context.Background(), []models.Tweet{{ID: 1}})
	require.Error(t, err)
}
