// Package guard wraps storage adapters with a shared circuit breaker so an
// unreachable database fails fast instead of piling up requests.
package guard

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/attendance"
	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/court"
	"github.com/riskibarqy/courtside/internal/domain/lineup"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

// isFailure reports whether err says something about storage health.
// Constraint violations and caller cancellations do not.
func isFailure(err error) bool {
	switch {
	case errors.Is(err, booking.ErrOverlap),
		errors.Is(err, lineup.ErrAlreadyExists),
		errors.Is(err, sql.ErrNoRows),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

func run(b *resilience.CircuitBreaker, fn func() error) error {
	return b.Execute(fn, isFailure)
}

type CourtRepository struct {
	next    court.Repository
	breaker *resilience.CircuitBreaker
}

func NewCourtRepository(next court.Repository, breaker *resilience.CircuitBreaker) *CourtRepository {
	return &CourtRepository{next: next, breaker: breaker}
}

func (r *CourtRepository) GetByID(ctx context.Context, courtID string) (item court.Court, exists bool, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		item, exists, innerErr = r.next.GetByID(ctx, courtID)
		return innerErr
	})
	return item, exists, err
}

func (r *CourtRepository) List(ctx context.Context) (items []court.Court, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		items, innerErr = r.next.List(ctx)
		return innerErr
	})
	return items, err
}

type BookingRepository struct {
	next    booking.Repository
	breaker *resilience.CircuitBreaker
}

func NewBookingRepository(next booking.Repository, breaker *resilience.CircuitBreaker) *BookingRepository {
	return &BookingRepository{next: next, breaker: breaker}
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (item booking.Booking, exists bool, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		item, exists, innerErr = r.next.GetByID(ctx, bookingID)
		return innerErr
	})
	return item, exists, err
}

func (r *BookingRepository) ListConfirmedByCourtAndDate(ctx context.Context, courtID string, date time.Time) (items []booking.Booking, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		items, innerErr = r.next.ListConfirmedByCourtAndDate(ctx, courtID, date)
		return innerErr
	})
	return items, err
}

func (r *BookingRepository) Save(ctx context.Context, item booking.Booking) error {
	return run(r.breaker, func() error { return r.next.Save(ctx, item) })
}

func (r *BookingRepository) Cancel(ctx context.Context, bookingID string) error {
	return run(r.breaker, func() error { return r.next.Cancel(ctx, bookingID) })
}

type SessionRepository struct {
	next    session.Repository
	breaker *resilience.CircuitBreaker
}

func NewSessionRepository(next session.Repository, breaker *resilience.CircuitBreaker) *SessionRepository {
	return &SessionRepository{next: next, breaker: breaker}
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (item session.Session, exists bool, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		item, exists, innerErr = r.next.GetByID(ctx, sessionID)
		return innerErr
	})
	return item, exists, err
}

func (r *SessionRepository) GetByNaturalKey(ctx context.Context, key session.NaturalKey) (item session.Session, exists bool, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		item, exists, innerErr = r.next.GetByNaturalKey(ctx, key)
		return innerErr
	})
	return item, exists, err
}

func (r *SessionRepository) Create(ctx context.Context, item session.Session) error {
	return run(r.breaker, func() error { return r.next.Create(ctx, item) })
}

func (r *SessionRepository) Update(ctx context.Context, item session.Session) error {
	return run(r.breaker, func() error { return r.next.Update(ctx, item) })
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return run(r.breaker, func() error { return r.next.Delete(ctx, sessionID) })
}

func (r *SessionRepository) UpdateToken(ctx context.Context, sessionID string, token session.Token) error {
	return run(r.breaker, func() error { return r.next.UpdateToken(ctx, sessionID, token) })
}

type AttendanceRepository struct {
	next    attendance.Repository
	breaker *resilience.CircuitBreaker
}

func NewAttendanceRepository(next attendance.Repository, breaker *resilience.CircuitBreaker) *AttendanceRepository {
	return &AttendanceRepository{next: next, breaker: breaker}
}

func (r *AttendanceRepository) Upsert(ctx context.Context, item attendance.Record) (out attendance.Record, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		out, innerErr = r.next.Upsert(ctx, item)
		return innerErr
	})
	return out, err
}

func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID string) (items []attendance.Record, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		items, innerErr = r.next.ListBySession(ctx, sessionID)
		return innerErr
	})
	return items, err
}

func (r *AttendanceRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	return run(r.breaker, func() error { return r.next.DeleteBySession(ctx, sessionID) })
}

type LineupRepository struct {
	next    lineup.Repository
	breaker *resilience.CircuitBreaker
}

func NewLineupRepository(next lineup.Repository, breaker *resilience.CircuitBreaker) *LineupRepository {
	return &LineupRepository{next: next, breaker: breaker}
}

func (r *LineupRepository) GetBySession(ctx context.Context, sessionID string) (item lineup.Lineup, exists bool, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		item, exists, innerErr = r.next.GetBySession(ctx, sessionID)
		return innerErr
	})
	return item, exists, err
}

func (r *LineupRepository) Create(ctx context.Context, item lineup.Lineup) error {
	return run(r.breaker, func() error { return r.next.Create(ctx, item) })
}

func (r *LineupRepository) Replace(ctx context.Context, item lineup.Lineup) (previousID string, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		previousID, innerErr = r.next.Replace(ctx, item)
		return innerErr
	})
	return previousID, err
}

func (r *LineupRepository) DeleteBySession(ctx context.Context, sessionID string) (deleted bool, err error) {
	err = run(r.breaker, func() error {
		var innerErr error
		deleted, innerErr = r.next.DeleteBySession(ctx, sessionID)
		return innerErr
	})
	return deleted, err
}
