// Package metadata keeps small key/value facts about the local cache, such as
// when the timeline was last synchronized with the feed service.
package metadata

import (
	"context"
	"time"
)

// KeyLastSyncedAt records the time of the last successful home refresh.
const KeyLastSyncedAt = "last_synced_at"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	SetTime(ctx context.Context, key string, t time.Time) error
	GetTime(ctx context.Context, key string) (time.Time, bool, error)
}
