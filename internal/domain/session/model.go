package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

var ErrInvalidSession = errors.New("invalid training session")

// Session is one scheduled training slot, held either on a court or at a
// free-text external location.
type Session struct {
	ID               string
	CourtID          string
	ExternalLocation string
	Date             time.Time
	StartTime        schedule.TimeOfDay
	EndTime          schedule.TimeOfDay
	GroupID          string
	SessionType      string
	CreatedBy        string
	Token            Token
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.CourtID) != "" && strings.TrimSpace(s.ExternalLocation) != "" {
		return fmt.Errorf("%w: court_id and external_location are mutually exclusive", ErrInvalidSession)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidSession)
	}
	return s.Interval().Validate()
}

func (s Session) CourtBacked() bool {
	return strings.TrimSpace(s.CourtID) != ""
}

func (s Session) Interval() schedule.Interval {
	return schedule.Interval{Start: s.StartTime, End: s.EndTime}
}

func (s Session) NaturalKey() NaturalKey {
	return NaturalKey{
		CourtID:          s.CourtID,
		ExternalLocation: strings.ToLower(strings.TrimSpace(s.ExternalLocation)),
		Date:             schedule.DateOf(s.Date),
		StartTime:        s.StartTime,
	}
}

// NaturalKey identifies an occurrence independently of its generated id, so a
// retried batch can recognise what it already created.
type NaturalKey struct {
	CourtID          string
	ExternalLocation string
	Date             time.Time
	StartTime        schedule.TimeOfDay
}

func (k NaturalKey) String() string {
	place := "court:" + k.CourtID
	if k.CourtID == "" {
		place = "external:" + k.ExternalLocation
	}
	return place + "|" + schedule.FormatDate(k.Date) + "|" + k.StartTime.String()
}
