package attendance

import (
	"fmt"
	"time"
)

type State string

const (
	StatePresent State = "presente"
	StateAbsent  State = "ausente"
	StateExcused State = "justificado"
)

type Origin string

const (
	OriginPlayer Origin = "jugador"
	OriginCoach  Origin = "entrenador"
)

// Record is the attendance of one player at one session. There is at most
// one record per (SessionID, PlayerID).
type Record struct {
	ID         string
	SessionID  string
	PlayerID   string
	State      State
	Origin     Origin
	Lat        *float64
	Lng        *float64
	RecordedAt time.Time
}

func ParseState(raw string) (State, error) {
	switch s := State(raw); s {
	case StatePresent, StateAbsent, StateExcused:
		return s, nil
	default:
		return "", fmt.Errorf("unknown attendance state %q", raw)
	}
}

func ParseOrigin(raw string) (Origin, error) {
	switch o := Origin(raw); o {
	case OriginPlayer, OriginCoach:
		return o, nil
	default:
		return "", fmt.Errorf("unknown attendance origin %q", raw)
	}
}
