package lineup

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrAlreadyExists    = errors.New("lineup already exists for session")
	ErrInvalidLineup    = errors.New("invalid lineup")
	ErrInvalidFormation = errors.New("invalid formation")
)

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
	PositionSubstitute Position = "SUB"
)

// Lineup is the formation used for one training session. A session has at
// most one live lineup.
type Lineup struct {
	ID            string
	SessionID     string
	AutoGenerated bool
	Formation     string
	Players       []Player
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Player is one slot of a lineup; X and Y are pitch coordinates in [0,100].
type Player struct {
	PlayerID string
	Position Position
	Order    int
	Comment  string
	X        float64
	Y        float64
}

func (l Lineup) Validate() error {
	if strings.TrimSpace(l.SessionID) == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidLineup)
	}

	seen := make(map[string]struct{}, len(l.Players))
	for _, p := range l.Players {
		id := strings.TrimSpace(p.PlayerID)
		if id == "" {
			return fmt.Errorf("%w: player id cannot be empty", ErrInvalidLineup)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("%w: duplicate player id %s", ErrInvalidLineup, id)
		}
		seen[id] = struct{}{}

		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			return fmt.Errorf("%w: player %s coordinates must be within 0-100", ErrInvalidLineup, id)
		}
	}

	return nil
}

func (l Lineup) PlayerIDs() []string {
	out := make([]string, 0, len(l.Players))
	for _, p := range l.Players {
		out = append(out, p.PlayerID)
	}
	return out
}

func Clone(item Lineup) Lineup {
	copied := item
	copied.Players = append([]Player(nil), item.Players...)
	return copied
}
