package session

import "time"

type TokenState string

const (
	TokenStateInactive    TokenState = "inactive"
	TokenStateActive      TokenState = "active"
	TokenStateExpired     TokenState = "expired"
	TokenStateDeactivated TokenState = "deactivated"
)

// Token is the attendance credential sub-state of a session. Expiry is
// derived from ExpiresAt and the clock, never stored.
type Token struct {
	Value            string
	Active           bool
	ExpiresAt        time.Time
	RequiresLocation bool
	Lat              *float64
	Lng              *float64
}

func (t Token) IsValid(now time.Time) bool {
	return t.Active && now.Before(t.ExpiresAt)
}

func (t Token) State(now time.Time) TokenState {
	switch {
	case t.Value == "":
		return TokenStateInactive
	case !t.Active:
		return TokenStateDeactivated
	case !now.Before(t.ExpiresAt):
		return TokenStateExpired
	default:
		return TokenStateActive
	}
}

func (t Token) HasAnchor() bool {
	return t.Lat != nil && t.Lng != nil
}
