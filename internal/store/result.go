package store

import "fmt"

// OpState is the lifecycle of an optimistic operation.
type OpState int

const (
	// Pending: the provisional change is visible, the server has not answered.
	Pending OpState = iota
	// Committed: the server confirmed the change.
	Committed
	// RolledBack: the server rejected the change and local state was restored.
	RolledBack
)

func (s OpState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	}
	return fmt.Sprintf("OpState(%d)", int(s))
}

// OpResult is the outcome of an optimistic operation. Record is the
// provisional record while Pending, the server record once Committed and the
// discarded provisional record when RolledBack.
type OpResult[T any] struct {
	State  OpState
	Record T
	Err    error
}

// IsTemporaryID reports whether id was assigned locally and not yet
// confirmed by the server. Server ids are always positive.
func IsTemporaryID(id int64) bool {
	return id < 0
}

// DesyncError reports a failed delete whose recovery re-fetch failed too.
// Only the removed record was put back; the collection may no longer match
// the server.
type DesyncError struct {
	DeleteErr error
	ResyncErr error
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("resync failed: %v (after delete failed: %v)", e.ResyncErr, e.DeleteErr)
}

func (e *DesyncError) Unwrap() []error {
	return []error{e.ResyncErr, e.DeleteErr}
}
