package session

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

func TestSession_Validate(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		item    Session
		wantErr error
	}{
		{name: "court backed", item: Session{CourtID: "1", Date: day, StartTime: 600, EndTime: 660}},
		{name: "external", item: Session{ExternalLocation: "City park", Date: day, StartTime: 600, EndTime: 660}},
		{name: "both locations", item: Session{CourtID: "1", ExternalLocation: "Park", Date: day, StartTime: 600, EndTime: 660}, wantErr: ErrInvalidSession},
		{name: "inverted times", item: Session{CourtID: "1", Date: day, StartTime: 660, EndTime: 600}, wantErr: schedule.ErrInvalidRange},
		{name: "missing date", item: Session{CourtID: "1", StartTime: 600, EndTime: 660}, wantErr: ErrInvalidSession},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestToken_State(t *testing.T) {
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token Token
		want  TokenState
		valid bool
	}{
		{name: "never activated", token: Token{}, want: TokenStateInactive},
		{name: "active", token: Token{Value: "AB12", Active: true, ExpiresAt: now.Add(time.Minute)}, want: TokenStateActive, valid: true},
		{name: "expired exactly now", token: Token{Value: "AB12", Active: true, ExpiresAt: now}, want: TokenStateExpired},
		{name: "deactivated before expiry", token: Token{Value: "AB12", Active: false, ExpiresAt: now.Add(time.Hour)}, want: TokenStateDeactivated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.State(now); got != tc.want {
				t.Fatalf("State()=%s want=%s", got, tc.want)
			}
			if got := tc.token.IsValid(now); got != tc.valid {
				t.Fatalf("IsValid()=%v want=%v", got, tc.valid)
			}
		})
	}
}

func TestNaturalKey_String(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	court := Session{CourtID: "1", Date: day, StartTime: 600}.NaturalKey()
	if got := court.String(); got != "court:1|2024-03-04|10:00" {
		t.Fatalf("unexpected court key: %s", got)
	}
	external := Session{ExternalLocation: " City Park ", Date: day, StartTime: 600}.NaturalKey()
	if got := external.String(); got != "external:city park|2024-03-04|10:00" {
		t.Fatalf("unexpected external key: %s", got)
	}
}
