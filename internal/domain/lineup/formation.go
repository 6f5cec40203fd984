package lineup

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	goalkeeperY  = 8.0
	attackLimitY = 92.0
)

// ParseFormation reads outfield lines such as "1-2-1" from back to front.
func ParseFormation(raw string) ([]int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, fmt.Errorf("%w: formation is required", ErrInvalidFormation)
	}

	parts := strings.Split(value, "-")
	lines := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormation, raw)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: line size must be > 0 in %q", ErrInvalidFormation, raw)
		}
		lines = append(lines, n)
	}
	return lines, nil
}

// Arrange lays players out on the pitch in the given order: the first one
// keeps goal, the next ones fill the formation lines and the rest go to the
// bench.
func Arrange(playerIDs []string, lines []int) []Player {
	out := make([]Player, 0, len(playerIDs))
	next := 0
	take := func(pos Position, x, y float64) bool {
		if next >= len(playerIDs) {
			return false
		}
		out = append(out, Player{
			PlayerID: playerIDs[next],
			Position: pos,
			Order:    next + 1,
			X:        round2(x),
			Y:        round2(y),
		})
		next++
		return true
	}

	if !take(PositionGoalkeeper, 50, goalkeeperY) {
		return out
	}

	step := (attackLimitY - goalkeeperY) / float64(len(lines))
	for li, count := range lines {
		pos := linePosition(li, len(lines))
		y := goalkeeperY + float64(li+1)*step
		for i := 0; i < count; i++ {
			x := 100 * float64(i+1) / float64(count+1)
			if !take(pos, x, y) {
				return out
			}
		}
	}

	for take(PositionSubstitute, 0, 0) {
	}
	return out
}

func linePosition(index, total int) Position {
	switch {
	case total == 1:
		return PositionMidfielder
	case index == 0:
		return PositionDefender
	case index == total-1:
		return PositionForward
	default:
		return PositionMidfielder
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
