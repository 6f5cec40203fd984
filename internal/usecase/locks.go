package usecase

import (
	"time"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

func courtDateLockKey(courtID string, date time.Time) string {
	return "court:" + courtID + "|" + schedule.FormatDate(date)
}

func sessionTokenLockKey(sessionID string) string {
	return "token:" + sessionID
}

func lineupLockKey(sessionID string) string {
	return "lineup:" + sessionID
}

func naturalKeyLockKey(key string) string {
	return "occurrence:" + key
}
