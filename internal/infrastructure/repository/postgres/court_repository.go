package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/courtside/internal/domain/court"
	qb "github.com/riskibarqy/courtside/internal/platform/querybuilder"
)

type courtTableModel struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Active bool   `db:"active"`
}

type CourtRepository struct {
	db *sqlx.DB
}

func NewCourtRepository(db *sqlx.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

func (r *CourtRepository) GetByID(ctx context.Context, courtID string) (court.Court, bool, error) {
	query, args, err := qb.Select("id", "name", "active").
		From("courts").
		Where(qb.Eq("id", courtID)).
		ToSQL()
	if err != nil {
		return court.Court{}, false, fmt.Errorf("build get court query: %w", err)
	}

	var row courtTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return court.Court{}, false, nil
		}
		return court.Court{}, false, fmt.Errorf("get court: %w", err)
	}
	return court.Court(row), true, nil
}

func (r *CourtRepository) List(ctx context.Context) ([]court.Court, error) {
	query, args, err := qb.Select("id", "name", "active").
		From("courts").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list courts query: %w", err)
	}

	var rows []courtTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	out := make([]court.Court, 0, len(rows))
	for _, row := range rows {
		out = append(out, court.Court(row))
	}
	return out, nil
}
