package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

// ErrOverlap is returned by storage when a confirmed booking would share
// time with another confirmed booking on the same court and date.
var ErrOverlap = errors.New("court booking overlaps an existing booking")

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

const (
	OwnerSessionPrefix = "session:"
	OwnerUserPrefix    = "user:"
)

// Booking reserves a court for a window on one date.
type Booking struct {
	ID        string
	CourtID   string
	Date      time.Time
	StartTime schedule.TimeOfDay
	EndTime   schedule.TimeOfDay
	OwnerRef  string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Booking) Interval() schedule.Interval {
	return schedule.Interval{Start: b.StartTime, End: b.EndTime}
}

func (b Booking) Confirmed() bool {
	return b.Status == StatusConfirmed
}

// Conflicts reports whether both bookings hold the same court on the same
// date with overlapping windows.
func (b Booking) Conflicts(other Booking) bool {
	if b.ID == other.ID || b.CourtID != other.CourtID {
		return false
	}
	if !b.Date.Equal(other.Date) {
		return false
	}
	return b.Interval().Overlaps(other.Interval())
}

func SessionOwner(sessionID string) string {
	return OwnerSessionPrefix + sessionID
}

func UserOwner(userID string) string {
	return OwnerUserPrefix + userID
}

func (b Booking) OwnedBySession() bool {
	return strings.HasPrefix(b.OwnerRef, OwnerSessionPrefix)
}
