// Package cache is the durable local copy of the timeline.
//
// Store is the CacheStore of the timeline engine: a recency-ordered read of
// cached tweets with their authors, and an all-or-nothing batch upsert of
// users and tweets. Both run on a SQLite database opened by InitDatabase.
//
// Writers are serialized by the store; readers share the single pooled
// connection with writers, so a read sees either the state before a batch or
// the state after it.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophfeed/internal/client/repositories/tweets"
	"github.com/dmitrijs2005/gophfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/dbx"
)

type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewStore wraps an initialized cache database. A nil db yields a store that
// fails closed on every call.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open is InitDatabase followed by NewStore.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

func (s *Store) ready() bool {
	return s != nil && s.db != nil
}

// Recent returns at most limit cached tweets, newest first. An uninitialized
// store returns an empty slice and common.ErrStorageUnavailable.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.TweetWithUser, error) {
	if !s.ready() {
		return []models.TweetWithUser{}, common.ErrStorageUnavailable
	}
	items, err := tweets.NewSQLiteRepository(s.db).Recent(ctx, limit)
	if err != nil {
		return []models.TweetWithUser{}, fmt.Errorf("cache read: %w", err)
	}
	return items, nil
}

// UpsertBatch writes users and tweets in one transaction, replacing rows with
// matching IDs, and stamps the sync time. Either everything lands or nothing.
func (s *Store) UpsertBatch(ctx context.Context, us []models.User, ts []models.Tweet) error {
	if !s.ready() {
		return common.ErrStorageUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := users.NewSQLiteRepository(tx).UpsertMany(ctx, us); err != nil {
			return err
		}
		if err := tweets.NewSQLiteRepository(tx).UpsertMany(ctx, ts); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).SetTime(ctx, metadata.KeyLastSyncedAt, s.now())
	})
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// PersistBatch splits a joined batch and upserts it.
func (s *Store) PersistBatch(ctx context.Context, batch []models.TweetWithUser) error {
	us, ts := models.Split(batch)
	return s.UpsertBatch(ctx, us, ts)
}

// LastSynced reports when a batch was last written.
func (s *Store) LastSynced(ctx context.Context) (time.Time, bool, error) {
	if !s.ready() {
		return time.Time{}, false, common.ErrStorageUnavailable
	}
	return metadata.NewSQLiteRepository(s.db).GetTime(ctx, metadata.KeyLastSyncedAt)
}

// Count reports how many tweets the cache holds.
func (s *Store) Count(ctx context.Context) (int, error) {
	if !s.ready() {
		return 0, common.ErrStorageUnavailable
	}
	return tweets.NewSQLiteRepository(s.db).Count(ctx)
}

func (s *Store) Close() error {
	if !s.ready() {
		return nil
	}
	return s.db.Close()
}
