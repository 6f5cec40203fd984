package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/courtside/internal/domain/attendance"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/geo"
	"github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

type SubmitAttendanceInput struct {
	SessionID string
	Token     string
	PlayerID  string
	Lat       *float64
	Lng       *float64
}

type RecordAttendanceInput struct {
	SessionID string
	PlayerID  string
	State     string
}

type AttendanceServiceConfig struct {
	// GeofenceRadiusMeters enables the distance check against the token
	// anchor. Zero only requires that a location is present.
	GeofenceRadiusMeters float64
}

type AttendanceService struct {
	sessionRepo    session.Repository
	attendanceRepo attendance.Repository
	idGen          id.Generator
	cfg            AttendanceServiceConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewAttendanceService(
	sessionRepo session.Repository,
	attendanceRepo attendance.Repository,
	idGen id.Generator,
	cfg AttendanceServiceConfig,
	logger *logging.Logger,
) *AttendanceService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.GeofenceRadiusMeters < 0 {
		cfg.GeofenceRadiusMeters = 0
	}

	return &AttendanceService{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		idGen:          idGen,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit admits a player's self check-in. Checks run in order: token
// value, token validity, location presence, then geofence.
func (s *AttendanceService) Submit(ctx context.Context, input SubmitAttendanceInput) (attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.Submit")
	defer span.End()

	submitted := strings.ToUpper(strings.TrimSpace(input.Token))
	playerID := strings.TrimSpace(input.PlayerID)
	if submitted == "" {
		return attendance.Record{}, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if playerID == "" {
		return attendance.Record{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	location, hasLocation, err := optionalPoint(input.Lat, input.Lng)
	if err != nil {
		return attendance.Record{}, err
	}

	item, err := requireSession(ctx, s.sessionRepo, input.SessionID)
	if err != nil {
		return attendance.Record{}, err
	}

	if err := s.authorize(item.Token, submitted, location, hasLocation); err != nil {
		s.logger.WarnContext(ctx, "attendance submission rejected",
			"session_id", item.ID,
			"player_id", playerID,
			"error", err,
		)
		return attendance.Record{}, err
	}

	record := attendance.Record{
		SessionID:  item.ID,
		PlayerID:   playerID,
		State:      attendance.StatePresent,
		Origin:     attendance.OriginPlayer,
		RecordedAt: s.now().UTC(),
	}
	if hasLocation {
		record.Lat = &location.Lat
		record.Lng = &location.Lng
	}
	return s.upsert(ctx, record)
}

func (s *AttendanceService) authorize(token session.Token, submitted string, location geo.Point, hasLocation bool) error {
	state := token.State(s.now())
	if state == session.TokenStateInactive {
		return crerr.WithStack(ErrTokenInactive)
	}
	if submitted != token.Value {
		return crerr.WithStack(ErrTokenMismatch)
	}
	switch state {
	case session.TokenStateDeactivated:
		return crerr.WithStack(ErrTokenInactive)
	case session.TokenStateExpired:
		return crerr.WithStack(ErrTokenExpired)
	}

	if token.RequiresLocation && !hasLocation {
		return crerr.WithStack(ErrLocationRequired)
	}
	if token.RequiresLocation && token.HasAnchor() && s.cfg.GeofenceRadiusMeters > 0 {
		anchor := geo.Point{Lat: *token.Lat, Lng: *token.Lng}
		if distance := geo.DistanceMeters(anchor, location); distance > s.cfg.GeofenceRadiusMeters {
			return crerr.Wrapf(ErrOutsideGeofence, "%.0fm from anchor, limit %.0fm", distance, s.cfg.GeofenceRadiusMeters)
		}
	}
	return nil
}

// Record stores a coach-entered attendance state without a token.
func (s *AttendanceService) Record(ctx context.Context, input RecordAttendanceInput) (attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.Record")
	defer span.End()

	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return attendance.Record{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	state, err := attendance.ParseState(strings.TrimSpace(input.State))
	if err != nil {
		return attendance.Record{}, invalidInput(err)
	}

	item, err := requireSession(ctx, s.sessionRepo, input.SessionID)
	if err != nil {
		return attendance.Record{}, err
	}

	return s.upsert(ctx, attendance.Record{
		SessionID:  item.ID,
		PlayerID:   playerID,
		State:      state,
		Origin:     attendance.OriginCoach,
		RecordedAt: s.now().UTC(),
	})
}

func (s *AttendanceService) ListBySession(ctx context.Context, sessionID string) ([]attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.ListBySession")
	defer span.End()

	item, err := requireSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListBySession(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list attendance by session: %w", err)
	}
	return records, nil
}

func (s *AttendanceService) upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	recordID, err := s.idGen.NewID()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("generate attendance id: %w", err)
	}
	record.ID = recordID

	stored, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("upsert attendance: %w", err)
	}
	return stored, nil
}

func optionalPoint(lat, lng *float64) (geo.Point, bool, error) {
	if lat == nil && lng == nil {
		return geo.Point{}, false, nil
	}
	if lat == nil || lng == nil {
		return geo.Point{}, false, fmt.Errorf("%w: lat and lng must be provided together", ErrInvalidInput)
	}
	p := geo.Point{Lat: *lat, Lng: *lng}
	if !p.Valid() {
		return geo.Point{}, false, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	return p, true, nil
}
