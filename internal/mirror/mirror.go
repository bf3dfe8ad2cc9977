// Package mirror persists client-side HR state between sessions.
//
// A Mirror is a flat string key-value store. Values are JSON text for
// collections, the literal "true" for the auth flag and the raw token
// string for the session token. Keys are fixed.
package mirror

import (
	"context"
	"errors"
)

// Mirrored keys.
const (
	KeyLeaveRequests = "leaveRequests"
	KeyAttendance    = "attendanceRecords"
	KeyReviews       = "reviews"
	KeyAuth          = "auth"
	KeyToken         = "token"
)

// AuthTrue is the stored value of an authenticated session flag.
const AuthTrue = "true"

// ErrQuotaExceeded is returned when a write does not fit the backend's capacity.
var ErrQuotaExceeded = errors.New("mirror quota exceeded")

// Mirror is the persistence port used by the client store.
type Mirror interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key succeeds.
	Remove(ctx context.Context, key string) error
}
