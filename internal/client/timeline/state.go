package timeline

import "fmt"

// State is the controller lifecycle state.
type State int32

const (
	StateInit State = iota
	StateLoading
	StateDisplayed
	StatePaginating
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateLoading:
		return "LOADING"
	case StateDisplayed:
		return "DISPLAYED"
	case StatePaginating:
		return "PAGINATING"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// SourceKind ranks where the displayed feed came from. Higher wins.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceCache
	SourceRemote
)

func (k SourceKind) String() string {
	switch k {
	case SourceNone:
		return "none"
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source is the active version of the feed. For remote content Pages counts
// the head page plus every older page appended since the last replace; cached
// content is always a single version.
type Source struct {
	Kind  SourceKind
	Pages int
}

func (s Source) String() string {
	switch {
	case s.Kind == SourceNone:
		return "none"
	case s.Kind == SourceCache:
		return "cache"
	default:
		return fmt.Sprintf("%s-%d", s.Kind, s.Pages)
	}
}
