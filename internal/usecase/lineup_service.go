package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/lineup"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

// LineupParams describes the lineup to build. With Auto set, PlayerIDs are
// laid out by Formation; otherwise Players are used as given.
type LineupParams struct {
	Auto      bool
	Formation string
	PlayerIDs []string
	Players   []lineup.Player
}

type LineupServiceConfig struct {
	DefaultFormation string
}

// LineupService keeps at most one lineup per session. Generate never
// overwrites; Replace is the explicit destructive path.
type LineupService struct {
	sessionRepo session.Repository
	lineupRepo  lineup.Repository
	locks       *resilience.KeyedMutex
	idGen       id.Generator
	cfg         LineupServiceConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewLineupService(
	sessionRepo session.Repository,
	lineupRepo lineup.Repository,
	locks *resilience.KeyedMutex,
	idGen id.Generator,
	cfg LineupServiceConfig,
	logger *logging.Logger,
) *LineupService {
	if locks == nil {
		locks = resilience.NewKeyedMutex()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.DefaultFormation) == "" {
		cfg.DefaultFormation = "1-2-1"
	}

	return &LineupService{
		sessionRepo: sessionRepo,
		lineupRepo:  lineupRepo,
		locks:       locks,
		idGen:       idGen,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Generate creates the session lineup, or fails with a *ConflictError
// naming the lineup that already exists.
func (s *LineupService) Generate(ctx context.Context, sessionID string, params LineupParams) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Generate")
	defer span.End()

	sid, err := s.requireSessionID(ctx, sessionID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	unlock, err := s.locks.Lock(ctx, lineupLockKey(sid))
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("lock session lineup: %w", err)
	}
	defer unlock()

	existing, exists, err := s.lineupRepo.GetBySession(ctx, sid)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup by session: %w", err)
	}
	if exists {
		return lineup.Lineup{}, &ConflictError{Resource: ConflictResourceLineup, ExistingID: existing.ID}
	}

	built, err := s.build(sid, params)
	if err != nil {
		return lineup.Lineup{}, err
	}
	if err := s.lineupRepo.Create(ctx, built); err != nil {
		if errors.Is(err, lineup.ErrAlreadyExists) {
			return lineup.Lineup{}, s.conflictFromStore(ctx, sid, err)
		}
		return lineup.Lineup{}, fmt.Errorf("create lineup: %w", err)
	}
	return built, nil
}

// Replace swaps the session lineup for a new one in one step.
func (s *LineupService) Replace(ctx context.Context, sessionID string, params LineupParams) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Replace")
	defer span.End()

	sid, err := s.requireSessionID(ctx, sessionID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	unlock, err := s.locks.Lock(ctx, lineupLockKey(sid))
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("lock session lineup: %w", err)
	}
	defer unlock()

	built, err := s.build(sid, params)
	if err != nil {
		return lineup.Lineup{}, err
	}
	removedID, err := s.lineupRepo.Replace(ctx, built)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("replace lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup replaced",
		"session_id", sid,
		"lineup_id", built.ID,
		"replaced_lineup_id", removedID,
	)
	return built, nil
}

func (s *LineupService) Get(ctx context.Context, sessionID string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Get")
	defer span.End()

	sid, err := s.requireSessionID(ctx, sessionID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	existing, exists, err := s.lineupRepo.GetBySession(ctx, sid)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup by session: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup for session=%s", ErrNotFound, sid)
	}
	return existing, nil
}

func (s *LineupService) Delete(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Delete")
	defer span.End()

	sid, err := s.requireSessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	unlock, err := s.locks.Lock(ctx, lineupLockKey(sid))
	if err != nil {
		return fmt.Errorf("lock session lineup: %w", err)
	}
	defer unlock()

	deleted, err := s.lineupRepo.DeleteBySession(ctx, sid)
	if err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: lineup for session=%s", ErrNotFound, sid)
	}
	return nil
}

func (s *LineupService) build(sessionID string, params LineupParams) (lineup.Lineup, error) {
	lineupID, err := s.idGen.NewID()
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
	}

	now := s.now().UTC()
	item := lineup.Lineup{
		ID:            lineupID,
		SessionID:     sessionID,
		AutoGenerated: params.Auto,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if params.Auto {
		formation := strings.TrimSpace(params.Formation)
		if formation == "" {
			formation = s.cfg.DefaultFormation
		}
		lines, err := lineup.ParseFormation(formation)
		if err != nil {
			return lineup.Lineup{}, invalidInput(err)
		}
		ids, err := normalizePlayerIDs(params.PlayerIDs)
		if err != nil {
			return lineup.Lineup{}, err
		}
		item.Formation = formation
		item.Players = lineup.Arrange(ids, lines)
	} else {
		item.Formation = strings.TrimSpace(params.Formation)
		item.Players = make([]lineup.Player, 0, len(params.Players))
		for i, p := range params.Players {
			p.PlayerID = strings.TrimSpace(p.PlayerID)
			p.Comment = strings.TrimSpace(p.Comment)
			if p.Position == "" {
				p.Position = lineup.PositionSubstitute
			}
			if p.Order <= 0 {
				p.Order = i + 1
			}
			item.Players = append(item.Players, p)
		}
	}

	if len(item.Players) == 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: at least one player is required", ErrInvalidInput)
	}
	if err := item.Validate(); err != nil {
		return lineup.Lineup{}, invalidInput(err)
	}
	return item, nil
}

func (s *LineupService) conflictFromStore(ctx context.Context, sessionID string, cause error) error {
	conflict := &ConflictError{Resource: ConflictResourceLineup, Err: cause}
	if existing, exists, err := s.lineupRepo.GetBySession(ctx, sessionID); err == nil && exists {
		conflict.ExistingID = existing.ID
	}
	return conflict
}

func (s *LineupService) requireSessionID(ctx context.Context, sessionID string) (string, error) {
	item, err := requireSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return "", err
	}
	return item.ID, nil
}

func normalizePlayerIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		playerID := strings.TrimSpace(raw)
		if playerID == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, exists := seen[playerID]; exists {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}
		out = append(out, playerID)
	}
	return out, nil
}
