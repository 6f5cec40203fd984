package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/courtside/internal/domain/attendance"
	qb "github.com/riskibarqy/courtside/internal/platform/querybuilder"
)

var attendanceColumns = []string{"id", "session_id", "player_id", "state", "origin", "lat", "lng", "recorded_at"}

type attendanceTableModel struct {
	ID         string          `db:"id"`
	SessionID  string          `db:"session_id"`
	PlayerID   string          `db:"player_id"`
	State      string          `db:"state"`
	Origin     string          `db:"origin"`
	Lat        sql.NullFloat64 `db:"lat"`
	Lng        sql.NullFloat64 `db:"lng"`
	RecordedAt time.Time       `db:"recorded_at"`
}

func attendanceFromRow(row attendanceTableModel) attendance.Record {
	return attendance.Record{
		ID:         row.ID,
		SessionID:  row.SessionID,
		PlayerID:   row.PlayerID,
		State:      attendance.State(row.State),
		Origin:     attendance.Origin(row.Origin),
		Lat:        floatFromNull(row.Lat),
		Lng:        floatFromNull(row.Lng),
		RecordedAt: row.RecordedAt,
	}
}

type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert keeps the id of an existing (session, player) row; RETURNING reports
// the id that actually survived.
func (r *AttendanceRepository) Upsert(ctx context.Context, item attendance.Record) (attendance.Record, error) {
	row := attendanceTableModel{
		ID:         item.ID,
		SessionID:  item.SessionID,
		PlayerID:   item.PlayerID,
		State:      string(item.State),
		Origin:     string(item.Origin),
		Lat:        nullFloat(item.Lat),
		Lng:        nullFloat(item.Lng),
		RecordedAt: item.RecordedAt,
	}
	query, args, err := qb.InsertModel("attendance_records", row, `ON CONFLICT (session_id, player_id) DO UPDATE SET
    state = EXCLUDED.state,
    origin = EXCLUDED.origin,
    lat = EXCLUDED.lat,
    lng = EXCLUDED.lng,
    recorded_at = EXCLUDED.recorded_at
RETURNING id`)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("build upsert attendance query: %w", err)
	}

	var id string
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return attendance.Record{}, fmt.Errorf("upsert attendance: %w", err)
	}
	item.ID = id
	return item, nil
}

func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID string) ([]attendance.Record, error) {
	query, args, err := qb.Select(attendanceColumns...).
		From("attendance_records").
		Where(qb.Eq("session_id", sessionID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list attendance query: %w", err)
	}

	var rows []attendanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance by session: %w", err)
	}

	out := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, attendanceFromRow(row))
	}
	return out, nil
}

func (r *AttendanceRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	query, args, err := qb.DeleteFrom("attendance_records").
		Where(qb.Eq("session_id", sessionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete attendance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete attendance by session: %w", err)
	}
	return nil
}
