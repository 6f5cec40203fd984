package usecase

import (
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Attendance authorization failures. Each one is marked as ErrUnauthorized,
// so crerr.Is(err, ErrUnauthorized) holds for all of them.
var (
	ErrTokenMismatch    = crerr.Mark(crerr.New("attendance token mismatch"), ErrUnauthorized)
	ErrTokenInactive    = crerr.Mark(crerr.New("attendance token inactive"), ErrUnauthorized)
	ErrTokenExpired     = crerr.Mark(crerr.New("attendance token expired"), ErrUnauthorized)
	ErrLocationRequired = crerr.Mark(crerr.New("attendance location required"), ErrUnauthorized)
	ErrOutsideGeofence  = crerr.Mark(crerr.New("attendance location outside geofence"), ErrUnauthorized)
)

const (
	ConflictResourceBooking = "court_booking"
	ConflictResourceLineup  = "lineup"
)

// ConflictError reports that the target slot is already taken. ExistingID
// names the holder so callers can offer a replace.
type ConflictError struct {
	Resource   string
	ExistingID string
	Date       string
	Err        error
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s conflict", e.Resource)
	if e.Date != "" {
		msg += " on " + e.Date
	}
	if e.ExistingID != "" {
		msg += " with " + e.ExistingID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// IsUnauthorized also matches errors marked with ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return crerr.Is(err, ErrUnauthorized)
}

// ConflictFrom extracts the conflict details of err, if any.
func ConflictFrom(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
