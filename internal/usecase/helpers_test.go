package usecase

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type sequenceIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

type scriptedTokens struct {
	mu     sync.Mutex
	values []string
}

func (g *scriptedTokens) NewToken(length int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.values) == 0 {
		return strings.Repeat("Z", length), nil
	}
	v := g.values[0]
	g.values = g.values[1:]
	return v, nil
}

type testEnv struct {
	clock *fakeClock

	courtRepo      *memory.CourtRepository
	bookingRepo    *memory.BookingRepository
	sessionRepo    *memory.SessionRepository
	attendanceRepo *memory.AttendanceRepository
	lineupRepo     *memory.LineupRepository

	availability *AvailabilityService
	bookings     *BookingService
	sessions     *SessionService
	tokens       *AttendanceTokenService
	attendance   *AttendanceService
	lineups      *LineupService
	tokenValues  *scriptedTokens
}

type testEnvOptions struct {
	recurringWorkers int
	geofenceRadius   float64
	tokens           []string
}

func newTestEnv(t *testing.T, opts testEnvOptions) *testEnv {
	t.Helper()

	env := &testEnv{
		clock:          newFakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
		courtRepo:      memory.NewCourtRepository(memory.SeedCourts()),
		bookingRepo:    memory.NewBookingRepository(),
		sessionRepo:    memory.NewSessionRepository(),
		attendanceRepo: memory.NewAttendanceRepository(),
		lineupRepo:     memory.NewLineupRepository(),
		tokenValues:    &scriptedTokens{values: opts.tokens},
	}

	logger := logging.NewNop()
	locks := resilience.NewKeyedMutex()
	ids := &sequenceIDs{prefix: "id"}

	env.availability = NewAvailabilityService(env.courtRepo, env.bookingRepo)
	env.bookings = NewBookingService(env.availability, env.bookingRepo, locks, ids, logger)
	env.sessions = NewSessionService(env.bookings, env.sessionRepo, env.attendanceRepo, env.lineupRepo, locks, ids,
		SessionServiceConfig{RecurringWorkers: opts.recurringWorkers}, logger)
	env.tokens = NewAttendanceTokenService(env.sessionRepo, env.tokenValues, locks, logger)
	env.attendance = NewAttendanceService(env.sessionRepo, env.attendanceRepo, ids,
		AttendanceServiceConfig{GeofenceRadiusMeters: opts.geofenceRadius}, logger)
	env.lineups = NewLineupService(env.sessionRepo, env.lineupRepo, locks, ids, LineupServiceConfig{}, logger)

	env.bookings.now = env.clock.Now
	env.sessions.now = env.clock.Now
	env.tokens.now = env.clock.Now
	env.attendance.now = env.clock.Now
	env.lineups.now = env.clock.Now
	return env
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := schedule.ParseDate(raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return d
}

func mustTime(t *testing.T, raw string) schedule.TimeOfDay {
	t.Helper()
	v, err := schedule.ParseTimeOfDay(raw)
	if err != nil {
		t.Fatalf("parse time %q: %v", raw, err)
	}
	return v
}

func floatPtr(v float64) *float64 {
	return &v
}
