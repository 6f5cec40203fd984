package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/courtside/internal/domain/lineup"
	qb "github.com/riskibarqy/courtside/internal/platform/querybuilder"
)

var (
	lineupColumns       = []string{"id", "session_id", "auto_generated", "formation", "created_at", "updated_at"}
	lineupPlayerColumns = []string{"lineup_id", "player_id", "position", "sort_order", "comment", "x", "y"}
)

type lineupTableModel struct {
	ID            string    `db:"id"`
	SessionID     string    `db:"session_id"`
	AutoGenerated bool      `db:"auto_generated"`
	Formation     string    `db:"formation"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type lineupPlayerTableModel struct {
	LineupID  string  `db:"lineup_id"`
	PlayerID  string  `db:"player_id"`
	Position  string  `db:"position"`
	SortOrder int     `db:"sort_order"`
	Comment   string  `db:"comment"`
	X         float64 `db:"x"`
	Y         float64 `db:"y"`
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetBySession(ctx context.Context, sessionID string) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select(lineupColumns...).
		From("lineups").
		Where(qb.Eq("session_id", sessionID)).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup by session: %w", err)
	}

	playersQuery, playersArgs, err := qb.Select(lineupPlayerColumns...).
		From("lineup_players").
		Where(qb.Eq("lineup_id", row.ID)).
		OrderBy("sort_order", "player_id").
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build list lineup players query: %w", err)
	}

	var players []lineupPlayerTableModel
	if err := r.db.SelectContext(ctx, &players, playersQuery, playersArgs...); err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("list lineup players: %w", err)
	}

	item := lineup.Lineup{
		ID:            row.ID,
		SessionID:     row.SessionID,
		AutoGenerated: row.AutoGenerated,
		Formation:     row.Formation,
		Players:       make([]lineup.Player, 0, len(players)),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	for _, p := range players {
		item.Players = append(item.Players, lineup.Player{
			PlayerID: p.PlayerID,
			Position: lineup.Position(p.Position),
			Order:    p.SortOrder,
			Comment:  p.Comment,
			X:        p.X,
			Y:        p.Y,
		})
	}
	return item, true, nil
}

func (r *LineupRepository) Create(ctx context.Context, item lineup.Lineup) error {
	return withTx(ctx, r.db, "create lineup", func(tx *sqlx.Tx) error {
		return insertLineup(ctx, tx, item)
	})
}

func (r *LineupRepository) Replace(ctx context.Context, item lineup.Lineup) (string, error) {
	var removedID string
	err := withTx(ctx, r.db, "replace lineup", func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom("lineups").
			Where(qb.Eq("session_id", item.SessionID)).
			Suffix("RETURNING id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete lineup query: %w", err)
		}

		var ids []string
		if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
			return fmt.Errorf("delete current lineup: %w", err)
		}
		if len(ids) > 0 {
			removedID = ids[0]
		}
		return insertLineup(ctx, tx, item)
	})
	if err != nil {
		return "", err
	}
	return removedID, nil
}

func (r *LineupRepository) DeleteBySession(ctx context.Context, sessionID string) (bool, error) {
	query, args, err := qb.DeleteFrom("lineups").
		Where(qb.Eq("session_id", sessionID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete lineup query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete lineup by session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete lineup: %w", err)
	}
	return affected > 0, nil
}

func insertLineup(ctx context.Context, tx *sqlx.Tx, item lineup.Lineup) error {
	query, args, err := qb.InsertModel("lineups", lineupTableModel{
		ID:            item.ID,
		SessionID:     item.SessionID,
		AutoGenerated: item.AutoGenerated,
		Formation:     item.Formation,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert lineup query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", lineup.ErrAlreadyExists, err)
		}
		return fmt.Errorf("insert lineup: %w", err)
	}

	if len(item.Players) == 0 {
		return nil
	}
	rows := make([]lineupPlayerTableModel, 0, len(item.Players))
	for _, p := range item.Players {
		rows = append(rows, lineupPlayerTableModel{
			LineupID:  item.ID,
			PlayerID:  p.PlayerID,
			Position:  string(p.Position),
			SortOrder: p.Order,
			Comment:   p.Comment,
			X:         p.X,
			Y:         p.Y,
		})
	}
	playersQuery, playersArgs, err := qb.InsertModels("lineup_players", rows, "")
	if err != nil {
		return fmt.Errorf("build insert lineup players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, playersQuery, playersArgs...); err != nil {
		return fmt.Errorf("insert lineup players: %w", err)
	}
	return nil
}
