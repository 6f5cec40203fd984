package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/domain/session"
	qb "github.com/riskibarqy/courtside/internal/platform/querybuilder"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (session.Session, bool, error) {
	return r.getOne(ctx, "get session", qb.Eq("id", sessionID))
}

func (r *SessionRepository) GetByNaturalKey(ctx context.Context, key session.NaturalKey) (session.Session, bool, error) {
	conditions := []qb.Condition{
		qb.Eq("session_date", schedule.FormatDate(key.Date)),
		qb.Eq("start_minute", int(key.StartTime)),
	}
	if key.CourtID != "" {
		conditions = append(conditions, qb.Eq("court_id", key.CourtID))
	} else {
		conditions = append(conditions,
			qb.IsNull("court_id"),
			qb.Expr("lower(external_location) = ?", key.ExternalLocation),
		)
	}
	return r.getOne(ctx, "get session by natural key", conditions...)
}

func (r *SessionRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (session.Session, bool, error) {
	query, args, err := qb.Select(sessionColumns...).
		From("training_sessions").
		Where(conditions...).
		OrderBy("created_at").
		Limit(1).
		ToSQL()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return sessionFromRow(row), true, nil
}

func (r *SessionRepository) Create(ctx context.Context, item session.Session) error {
	query, args, err := qb.InsertModel("training_sessions", sessionWriteFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build create session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, item session.Session) error {
	query, args, err := qb.UpdateModel("training_sessions", sessionWriteFromDomain(item), "id")
	if err != nil {
		return fmt.Errorf("build update session query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return requireAffected(result, "update session")
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	query, args, err := qb.DeleteFrom("training_sessions").
		Where(qb.Eq("id", sessionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) UpdateToken(ctx context.Context, sessionID string, token session.Token) error {
	expiresAt := sql.NullTime{Time: token.ExpiresAt, Valid: !token.ExpiresAt.IsZero()}
	query, args, err := qb.Update("training_sessions").
		Set("token", token.Value).
		Set("token_active", token.Active).
		Set("token_expires_at", expiresAt).
		Set("requires_location", token.RequiresLocation).
		Set("token_lat", nullFloat(token.Lat)).
		Set("token_lng", nullFloat(token.Lng)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", sessionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update session token query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session token: %w", err)
	}
	return requireAffected(result, "update session token")
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected %s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}
