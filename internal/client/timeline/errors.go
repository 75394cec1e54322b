package timeline

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/client/client"
	"github.com/dmitrijs2005/gophfeed/internal/common"
)

// ErrNotStarted is returned by Compose before Start.
var ErrNotStarted = errors.New("timeline controller not started")

type FailureKind int

const (
	StorageFailure FailureKind = iota + 1
	NetworkFailure
	ProtocolViolation
)

func (k FailureKind) String() string {
	switch k {
	case StorageFailure:
		return "storage failure"
	case NetworkFailure:
		return "network failure"
	case ProtocolViolation:
		return "protocol violation"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure is a classified error surfaced through events and Compose.
type Failure struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func storageFailure(op string, err error) *Failure {
	return &Failure{Kind: StorageFailure, Op: op, Err: err}
}

// remoteFailure classifies an error from the remote feed.
func remoteFailure(op string, err error) *Failure {
	kind := NetworkFailure
	if errors.Is(err, client.ErrMalformedResponse) || errors.Is(err, common.ErrProtocolViolation) {
		kind = ProtocolViolation
	}
	return &Failure{Kind: kind, Op: op, Err: err}
}
