package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/geo"
	"github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

const maxTokenLength = 64

type ActivateTokenInput struct {
	SessionID        string
	TTLMinutes       int
	TokenLength      int
	RequiresLocation bool
	Lat              *float64
	Lng              *float64
}

type TokenStatus struct {
	State            session.TokenState
	ExpiresAt        time.Time
	RequiresLocation bool
}

// AttendanceTokenService manages the per-session attendance credential.
// Writes for one session are serialized; the last activation wins.
type AttendanceTokenService struct {
	sessionRepo session.Repository
	tokens      id.TokenGenerator
	locks       *resilience.KeyedMutex
	logger      *logging.Logger
	now         func() time.Time
}

func NewAttendanceTokenService(
	sessionRepo session.Repository,
	tokens id.TokenGenerator,
	locks *resilience.KeyedMutex,
	logger *logging.Logger,
) *AttendanceTokenService {
	if locks == nil {
		locks = resilience.NewKeyedMutex()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AttendanceTokenService{
		sessionRepo: sessionRepo,
		tokens:      tokens,
		locks:       locks,
		logger:      logger,
		now:         time.Now,
	}
}

// Activate issues a fresh token, superseding any current one.
func (s *AttendanceTokenService) Activate(ctx context.Context, input ActivateTokenInput) (session.Token, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceTokenService.Activate")
	defer span.End()

	input.SessionID = strings.TrimSpace(input.SessionID)
	if input.TTLMinutes <= 0 {
		return session.Token{}, fmt.Errorf("%w: ttl_minutes must be > 0", ErrInvalidInput)
	}
	if input.TokenLength <= 0 || input.TokenLength > maxTokenLength {
		return session.Token{}, fmt.Errorf("%w: token_length must be between 1 and %d", ErrInvalidInput, maxTokenLength)
	}
	if (input.Lat == nil) != (input.Lng == nil) {
		return session.Token{}, fmt.Errorf("%w: lat and lng must be provided together", ErrInvalidInput)
	}
	if input.Lat != nil && !(geo.Point{Lat: *input.Lat, Lng: *input.Lng}).Valid() {
		return session.Token{}, fmt.Errorf("%w: anchor coordinates out of range", ErrInvalidInput)
	}

	unlock, err := s.locks.Lock(ctx, sessionTokenLockKey(input.SessionID))
	if err != nil {
		return session.Token{}, fmt.Errorf("lock session token: %w", err)
	}
	defer unlock()

	item, err := requireSession(ctx, s.sessionRepo, input.SessionID)
	if err != nil {
		return session.Token{}, err
	}

	value, err := s.tokens.NewToken(input.TokenLength)
	if err != nil {
		return session.Token{}, fmt.Errorf("generate attendance token: %w", err)
	}

	token := session.Token{
		Value:            value,
		Active:           true,
		ExpiresAt:        s.now().UTC().Add(time.Duration(input.TTLMinutes) * time.Minute),
		RequiresLocation: input.RequiresLocation,
	}
	if input.RequiresLocation && input.Lat != nil {
		lat, lng := *input.Lat, *input.Lng
		token.Lat = &lat
		token.Lng = &lng
	}

	if err := s.sessionRepo.UpdateToken(ctx, item.ID, token); err != nil {
		return session.Token{}, fmt.Errorf("store attendance token: %w", err)
	}

	s.logger.InfoContext(ctx, "attendance token activated",
		"session_id", item.ID,
		"expires_at", token.ExpiresAt,
		"requires_location", token.RequiresLocation,
		"superseded", item.Token.Value != "",
	)
	return token, nil
}

// Deactivate turns the token off regardless of its remaining TTL.
func (s *AttendanceTokenService) Deactivate(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceTokenService.Deactivate")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	unlock, err := s.locks.Lock(ctx, sessionTokenLockKey(sessionID))
	if err != nil {
		return fmt.Errorf("lock session token: %w", err)
	}
	defer unlock()

	item, err := requireSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return err
	}

	token := item.Token
	token.Active = false
	if err := s.sessionRepo.UpdateToken(ctx, item.ID, token); err != nil {
		return fmt.Errorf("store attendance token: %w", err)
	}

	s.logger.InfoContext(ctx, "attendance token deactivated", "session_id", item.ID)
	return nil
}

func (s *AttendanceTokenService) IsValid(ctx context.Context, sessionID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceTokenService.IsValid")
	defer span.End()

	item, err := requireSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return false, err
	}
	return item.Token.IsValid(s.now()), nil
}

func (s *AttendanceTokenService) Status(ctx context.Context, sessionID string) (TokenStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceTokenService.Status")
	defer span.End()

	item, err := requireSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return TokenStatus{}, err
	}
	return TokenStatus{
		State:            item.Token.State(s.now()),
		ExpiresAt:        item.Token.ExpiresAt,
		RequiresLocation: item.Token.RequiresLocation,
	}, nil
}
