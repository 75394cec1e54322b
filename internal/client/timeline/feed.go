package timeline

import "github.com/dmitrijs2005/gophfeed/internal/client/models"

// FeedState is the ordered, duplicate-free feed. It is not safe for
// concurrent use; the controller loop is its only owner.
type FeedState struct {
	items []models.TweetWithUser
	ids   map[int64]struct{}
}

func NewFeedState() *FeedState {
	return &FeedState{ids: make(map[int64]struct{})}
}

func (f *FeedState) Len() int { return len(f.items) }

func (f *FeedState) Has(id int64) bool {
	_, ok := f.ids[id]
	return ok
}

// Head returns the newest ID.
func (f *FeedState) Head() (int64, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	return f.items[0].ID(), true
}

// Tail returns the oldest ID.
func (f *FeedState) Tail() (int64, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	return f.items[len(f.items)-1].ID(), true
}

// Replace discards the current content and takes batch, keeping the first
// occurrence of any repeated ID.
func (f *FeedState) Replace(batch []models.TweetWithUser) {
	f.items = make([]models.TweetWithUser, 0, len(batch))
	f.ids = make(map[int64]struct{}, len(batch))
	for _, item := range batch {
		if f.Has(item.ID()) {
			continue
		}
		f.ids[item.ID()] = struct{}{}
		f.items = append(f.items, item)
	}
}

// Append adds items from batch that are not present yet and returns how many
// were added.
func (f *FeedState) Append(batch []models.TweetWithUser) int {
	n := 0
	for _, item := range batch {
		if f.Has(item.ID()) {
			continue
		}
		f.ids[item.ID()] = struct{}{}
		f.items = append(f.items, item)
		n++
	}
	return n
}

// Prepend puts item at the head unless its ID is already present.
func (f *FeedState) Prepend(item models.TweetWithUser) bool {
	if f.Has(item.ID()) {
		return false
	}
	items := make([]models.TweetWithUser, 0, len(f.items)+1)
	items = append(items, item)
	f.items = append(items, f.items...)
	f.ids[item.ID()] = struct{}{}
	return true
}

// Snapshot returns a copy that stays valid after further mutations.
func (f *FeedState) Snapshot() []models.TweetWithUser {
	out := make([]models.TweetWithUser, len(f.items))
	copy(out, f.items)
	return out
}
