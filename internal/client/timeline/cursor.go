package timeline

import (
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/common"
)

// Cursor is the ID boundary for the next older page. The zero Cursor means
// there is nothing to page from.
type Cursor struct {
	ID int64
}

func (c Cursor) IsZero() bool { return c.ID == 0 }

// CursorOf derives the cursor from the oldest item of a newest-first feed.
func CursorOf(feed []models.TweetWithUser) Cursor {
	if len(feed) == 0 {
		return Cursor{}
	}
	return Cursor{ID: feed[len(feed)-1].ID()}
}

// ValidateBatch checks that IDs are positive and strictly decreasing, which
// also rules out duplicates.
func ValidateBatch(batch []models.TweetWithUser) error {
	for i, item := range batch {
		if item.ID() <= 0 {
			return fmt.Errorf("%w: item %d has id %d", common.ErrProtocolViolation, i, item.ID())
		}
		if i > 0 && item.ID() >= batch[i-1].ID() {
			return fmt.Errorf("%w: id %d follows %d", common.ErrProtocolViolation, item.ID(), batch[i-1].ID())
		}
	}
	return nil
}

// Advance returns the cursor after applying batch. An empty batch leaves the
// cursor unchanged and reports false. A batch that is not entirely older than
// cur is a protocol violation.
func Advance(cur Cursor, batch []models.TweetWithUser) (Cursor, bool, error) {
	if len(batch) == 0 {
		return cur, false, nil
	}
	if err := ValidateBatch(batch); err != nil {
		return cur, false, err
	}
	if !cur.IsZero() && batch[0].ID() >= cur.ID {
		return cur, false, fmt.Errorf("%w: page starts at %d, cursor is %d", common.ErrProtocolViolation, batch[0].ID(), cur.ID)
	}
	return CursorOf(batch), true, nil
}
