package timeline

import (
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
)

type EventKind int

const (
	EventReplaced EventKind = iota + 1
	EventAppended
	EventPrepended
	EventFailed
	EventDiscarded
	EventExhausted
)

func (k EventKind) String() string {
	switch k {
	case EventReplaced:
		return "replaced"
	case EventAppended:
		return "appended"
	case EventPrepended:
		return "prepended"
	case EventFailed:
		return "failed"
	case EventDiscarded:
		return "discarded"
	case EventExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports one change or outcome. Count is the number of items added
// for Appended and Prepended, and the feed length for Replaced. For Discarded
// events Origin names the source of the dropped result. Feed is the snapshot
// taken right after the event; it is shared and must not be modified.
type Event struct {
	Kind    EventKind
	Count   int
	Source  Source
	Origin  SourceKind
	Failure *Failure
	Feed    []models.TweetWithUser
}

func (e Event) String() string {
	switch e.Kind {
	case EventReplaced:
		return fmt.Sprintf("replaced(%d) from %s", e.Count, e.Source)
	case EventAppended, EventPrepended:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Count)
	case EventFailed:
		if e.Failure != nil {
			return fmt.Sprintf("failed(%s)", e.Failure.Kind)
		}
	case EventDiscarded:
		return fmt.Sprintf("discarded(%s)", e.Origin)
	}
	return e.Kind.String()
}
