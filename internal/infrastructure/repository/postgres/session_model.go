package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/domain/session"
)

var sessionColumns = []string{
	"id", "court_id", "external_location", "session_date", "start_minute", "end_minute",
	"group_id", "session_type", "created_by",
	"token", "token_active", "token_expires_at", "requires_location", "token_lat", "token_lng",
	"created_at", "updated_at",
}

type sessionTableModel struct {
	ID               string          `db:"id"`
	CourtID          sql.NullString  `db:"court_id"`
	ExternalLocation string          `db:"external_location"`
	SessionDate      time.Time       `db:"session_date"`
	StartMinute      int             `db:"start_minute"`
	EndMinute        int             `db:"end_minute"`
	GroupID          string          `db:"group_id"`
	SessionType      string          `db:"session_type"`
	CreatedBy        string          `db:"created_by"`
	Token            string          `db:"token"`
	TokenActive      bool            `db:"token_active"`
	TokenExpiresAt   sql.NullTime    `db:"token_expires_at"`
	RequiresLocation bool            `db:"requires_location"`
	TokenLat         sql.NullFloat64 `db:"token_lat"`
	TokenLng         sql.NullFloat64 `db:"token_lng"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// sessionWriteModel leaves the token columns out; they change only through
// UpdateToken.
type sessionWriteModel struct {
	ID               string         `db:"id"`
	CourtID          sql.NullString `db:"court_id"`
	ExternalLocation string         `db:"external_location"`
	SessionDate      string         `db:"session_date"`
	StartMinute      int            `db:"start_minute"`
	EndMinute        int            `db:"end_minute"`
	GroupID          string         `db:"group_id"`
	SessionType      string         `db:"session_type"`
	CreatedBy        string         `db:"created_by"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func sessionFromRow(row sessionTableModel) session.Session {
	item := session.Session{
		ID:               row.ID,
		CourtID:          row.CourtID.String,
		ExternalLocation: row.ExternalLocation,
		Date:             schedule.DateOf(row.SessionDate),
		StartTime:        schedule.TimeOfDay(row.StartMinute),
		EndTime:          schedule.TimeOfDay(row.EndMinute),
		GroupID:          row.GroupID,
		SessionType:      row.SessionType,
		CreatedBy:        row.CreatedBy,
		Token: session.Token{
			Value:            row.Token,
			Active:           row.TokenActive,
			RequiresLocation: row.RequiresLocation,
			Lat:              floatFromNull(row.TokenLat),
			Lng:              floatFromNull(row.TokenLng),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.TokenExpiresAt.Valid {
		item.Token.ExpiresAt = row.TokenExpiresAt.Time
	}
	return item
}

func sessionWriteFromDomain(item session.Session) sessionWriteModel {
	return sessionWriteModel{
		ID:               item.ID,
		CourtID:          nullString(item.CourtID),
		ExternalLocation: item.ExternalLocation,
		SessionDate:      schedule.FormatDate(item.Date),
		StartMinute:      int(item.StartTime),
		EndMinute:        int(item.EndTime),
		GroupID:          item.GroupID,
		SessionType:      item.SessionType,
		CreatedBy:        item.CreatedBy,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}
