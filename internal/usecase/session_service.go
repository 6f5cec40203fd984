package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/courtside/internal/domain/attendance"
	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/lineup"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

const (
	OccurrenceReasonConflict  = "conflict"
	OccurrenceReasonDuplicate = "duplicate"
)

type SessionDetails struct {
	CourtID          string
	ExternalLocation string
	StartTime        schedule.TimeOfDay
	EndTime          schedule.TimeOfDay
	GroupID          string
	SessionType      string
	CreatedBy        string
}

type CreateSessionInput struct {
	SessionDetails
	Date time.Time
}

type CreateRecurringInput struct {
	SessionDetails
	StartDate time.Time
	EndDate   time.Time
	Weekdays  []int
}

type UpdateSessionInput struct {
	SessionDetails
	SessionID string
	Date      time.Time
}

type OccurrenceError struct {
	Date   string
	Reason string
}

type RecurringResult struct {
	Created []session.Session
	Errors  []OccurrenceError
}

type SessionServiceConfig struct {
	// RecurringWorkers above 1 creates occurrences concurrently.
	RecurringWorkers int
}

type SessionService struct {
	bookings       *BookingService
	sessionRepo    session.Repository
	attendanceRepo attendance.Repository
	lineupRepo     lineup.Repository
	locks          *resilience.KeyedMutex
	idGen          id.Generator
	cfg            SessionServiceConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewSessionService(
	bookings *BookingService,
	sessionRepo session.Repository,
	attendanceRepo attendance.Repository,
	lineupRepo lineup.Repository,
	locks *resilience.KeyedMutex,
	idGen id.Generator,
	cfg SessionServiceConfig,
	logger *logging.Logger,
) *SessionService {
	if locks == nil {
		locks = resilience.NewKeyedMutex()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RecurringWorkers < 1 {
		cfg.RecurringWorkers = 1
	}

	return &SessionService{
		bookings:       bookings,
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		lineupRepo:     lineupRepo,
		locks:          locks,
		idGen:          idGen,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Get")
	defer span.End()

	return requireSession(ctx, s.sessionRepo, sessionID)
}

// CreateSingle creates one session. A court conflict fails the whole call
// and nothing is stored.
func (s *SessionService) CreateSingle(ctx context.Context, input CreateSessionInput) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.CreateSingle",
		attribute.String("court.id", input.CourtID),
	)
	defer span.End()

	item, err := s.buildSession(input.SessionDetails, input.Date)
	if err != nil {
		return session.Session{}, err
	}
	if err := s.persist(ctx, item); err != nil {
		return session.Session{}, err
	}
	return item, nil
}

// CreateRecurring creates one session per occurrence. Conflicting and
// already-existing occurrences are reported in Errors and the batch goes on.
// Any other failure stops the batch; the sessions created so far are
// returned with the error.
func (s *SessionService) CreateRecurring(ctx context.Context, input CreateRecurringInput) (RecurringResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.CreateRecurring",
		attribute.String("court.id", input.CourtID),
	)
	defer span.End()

	dates, err := schedule.Expand(input.StartDate, input.EndDate, input.Weekdays)
	if err != nil {
		return RecurringResult{}, invalidInput(err)
	}

	// Validate the template once so a bad payload fails before any write.
	if _, err := s.buildSession(input.SessionDetails, input.StartDate); err != nil {
		return RecurringResult{}, err
	}

	result := RecurringResult{
		Created: make([]session.Session, 0, len(dates)),
		Errors:  make([]OccurrenceError, 0),
	}
	if len(dates) == 0 {
		return result, nil
	}

	var outcomes []occurrenceOutcome
	if s.cfg.RecurringWorkers > 1 && len(dates) > 1 {
		outcomes, err = s.createOccurrencesConcurrently(ctx, input.SessionDetails, dates)
		if err != nil {
			return result, err
		}
	} else {
		outcomes = make([]occurrenceOutcome, 0, len(dates))
		for _, date := range dates {
			outcome := s.createOccurrence(ctx, input.SessionDetails, date)
			outcomes = append(outcomes, outcome)
			if outcome.err != nil {
				break
			}
		}
	}

	var firstErr error
	for _, outcome := range outcomes {
		switch {
		case outcome.err != nil:
			if firstErr == nil {
				firstErr = outcome.err
			}
		case outcome.reason != "":
			result.Errors = append(result.Errors, OccurrenceError{Date: schedule.FormatDate(outcome.date), Reason: outcome.reason})
		default:
			result.Created = append(result.Created, outcome.created)
		}
	}

	if len(result.Errors) > 0 {
		s.logger.WarnContext(ctx, "recurring sessions partially created",
			"court_id", input.CourtID,
			"created", len(result.Created),
			"skipped", len(result.Errors),
		)
	}
	if firstErr != nil {
		return result, firstErr
	}
	return result, nil
}

type occurrenceOutcome struct {
	date    time.Time
	created session.Session
	reason  string
	err     error
}

func (s *SessionService) createOccurrence(ctx context.Context, details SessionDetails, date time.Time) occurrenceOutcome {
	outcome := occurrenceOutcome{date: date}

	item, err := s.buildSession(details, date)
	if err != nil {
		outcome.err = err
		return outcome
	}

	key := item.NaturalKey()
	unlock, err := s.locks.Lock(ctx, naturalKeyLockKey(key.String()))
	if err != nil {
		outcome.err = fmt.Errorf("lock occurrence %s: %w", key, err)
		return outcome
	}
	defer unlock()

	_, exists, err := s.sessionRepo.GetByNaturalKey(ctx, key)
	if err != nil {
		outcome.err = fmt.Errorf("get session by natural key: %w", err)
		return outcome
	}
	if exists {
		outcome.reason = OccurrenceReasonDuplicate
		return outcome
	}

	if err := s.persist(ctx, item); err != nil {
		if errors.Is(err, ErrConflict) {
			outcome.reason = OccurrenceReasonConflict
			return outcome
		}
		outcome.err = err
		return outcome
	}
	outcome.created = item
	return outcome
}

// createOccurrencesConcurrently fans occurrences out to a worker pool.
// Occurrences on different dates never share a court lock.
func (s *SessionService) createOccurrencesConcurrently(
	ctx context.Context,
	details SessionDetails,
	dates []time.Time,
) ([]occurrenceOutcome, error) {
	workerCount := min(s.cfg.RecurringWorkers, len(dates))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		outcomes = make([]occurrenceOutcome, 0, len(dates))
		workers  sync.WaitGroup
	)
	for _, date := range dates {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			outcome := s.createOccurrence(ctx, details, date)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit occurrence to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].date.Before(outcomes[j].date)
	})
	return outcomes, nil
}

// Update rewrites a session. A court-backed session re-checks availability
// excluding its own booking, which is moved or released as needed.
func (s *SessionService) Update(ctx context.Context, input UpdateSessionInput) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Update")
	defer span.End()

	current, err := requireSession(ctx, s.sessionRepo, input.SessionID)
	if err != nil {
		return session.Session{}, err
	}

	updated, err := s.buildSession(input.SessionDetails, input.Date)
	if err != nil {
		return session.Session{}, err
	}
	updated.ID = current.ID
	updated.Token = current.Token
	updated.CreatedAt = current.CreatedAt
	if updated.CreatedBy == "" {
		updated.CreatedBy = current.CreatedBy
	}

	if updated.CourtBacked() {
		if err := s.bookings.claim(ctx, s.sessionBooking(updated)); err != nil {
			return session.Session{}, err
		}
	} else if current.CourtBacked() {
		if err := s.bookings.releaseByID(ctx, current.ID); err != nil {
			return session.Session{}, err
		}
	}

	if err := s.sessionRepo.Update(ctx, updated); err != nil {
		s.restoreBooking(ctx, current)
		return session.Session{}, fmt.Errorf("update session: %w", err)
	}
	return updated, nil
}

// Delete removes a session with its booking, attendance and lineup.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Delete")
	defer span.End()

	current, err := requireSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return err
	}

	if current.CourtBacked() {
		if err := s.bookings.releaseByID(ctx, current.ID); err != nil {
			return err
		}
	}
	if err := s.sessionRepo.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.attendanceRepo.DeleteBySession(ctx, current.ID); err != nil {
		return fmt.Errorf("delete session attendance: %w", err)
	}
	if _, err := s.lineupRepo.DeleteBySession(ctx, current.ID); err != nil {
		return fmt.Errorf("delete session lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "session deleted", "session_id", current.ID)
	return nil
}

func (s *SessionService) buildSession(details SessionDetails, date time.Time) (session.Session, error) {
	sessionID, err := s.idGen.NewID()
	if err != nil {
		return session.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now().UTC()
	item := session.Session{
		ID:               sessionID,
		CourtID:          strings.TrimSpace(details.CourtID),
		ExternalLocation: strings.TrimSpace(details.ExternalLocation),
		Date:             schedule.DateOf(date),
		StartTime:        details.StartTime,
		EndTime:          details.EndTime,
		GroupID:          strings.TrimSpace(details.GroupID),
		SessionType:      strings.TrimSpace(details.SessionType),
		CreatedBy:        strings.TrimSpace(details.CreatedBy),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := item.Validate(); err != nil {
		return session.Session{}, invalidInput(err)
	}
	return item, nil
}

// persist claims the court slot, then stores the session. The booking is
// released again when the session write fails.
func (s *SessionService) persist(ctx context.Context, item session.Session) error {
	if item.CourtBacked() {
		if err := s.bookings.claim(ctx, s.sessionBooking(item)); err != nil {
			return err
		}
	}

	if err := s.sessionRepo.Create(ctx, item); err != nil {
		if item.CourtBacked() {
			if releaseErr := s.bookings.releaseByID(ctx, item.ID); releaseErr != nil {
				s.logger.ErrorContext(ctx, "release booking after failed session create",
					"session_id", item.ID,
					"error", releaseErr,
				)
			}
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *SessionService) restoreBooking(ctx context.Context, previous session.Session) {
	var err error
	if previous.CourtBacked() {
		err = s.bookings.claim(ctx, s.sessionBooking(previous))
	} else {
		err = s.bookings.releaseByID(ctx, previous.ID)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "restore session booking",
			"session_id", previous.ID,
			"error", err,
		)
	}
}

func (s *SessionService) sessionBooking(item session.Session) booking.Booking {
	now := s.now().UTC()
	return booking.Booking{
		ID:        item.ID,
		CourtID:   item.CourtID,
		Date:      item.Date,
		StartTime: item.StartTime,
		EndTime:   item.EndTime,
		OwnerRef:  booking.SessionOwner(item.ID),
		Status:    booking.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// requireSession loads a session or fails with ErrNotFound.
func requireSession(ctx context.Context, repo session.Repository, sessionID string) (session.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return session.Session{}, fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, sessionID)
	if err != nil {
		return session.Session{}, fmt.Errorf("get session by id: %w", err)
	}
	if !exists {
		return session.Session{}, fmt.Errorf("%w: session=%s", ErrNotFound, sessionID)
	}
	return item, nil
}
