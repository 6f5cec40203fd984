package guard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/court"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

var errDown = errors.New("dial tcp: connection refused")

type brokenCourts struct {
	calls int
}

func (b *brokenCourts) GetByID(context.Context, string) (court.Court, bool, error) {
	b.calls++
	return court.Court{}, false, errDown
}

func (b *brokenCourts) List(context.Context) ([]court.Court, error) {
	b.calls++
	return nil, errDown
}

func newBreaker() *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
}

func TestCourtRepository_OpensAfterStorageFailures(t *testing.T) {
	next := &brokenCourts{}
	repo := NewCourtRepository(next, newBreaker())

	for i := 0; i < 2; i++ {
		_, err := repo.List(t.Context())
		require.ErrorIs(t, err, errDown)
	}

	_, _, err := repo.GetByID(t.Context(), "court-1")
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	require.Equal(t, 2, next.calls)
}

func TestBookingRepository_OverlapDoesNotTrip(t *testing.T) {
	breaker := newBreaker()
	repo := NewBookingRepository(memory.NewBookingRepository(), breaker)
	date := time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(t.Context(), booking.Booking{
		ID: "b-1", CourtID: "court-1", Date: date, StartTime: 18 * 60, EndTime: 19 * 60, Status: booking.StatusConfirmed,
	}))
	for i := 0; i < 3; i++ {
		err := repo.Save(t.Context(), booking.Booking{
			ID: fmt.Sprintf("b-%d", i+2), CourtID: "court-1", Date: date, StartTime: 18*60 + 30, EndTime: 20 * 60, Status: booking.StatusConfirmed,
		})
		require.ErrorIs(t, err, booking.ErrOverlap)
	}

	require.Equal(t, resilience.CircuitStateClosed, breaker.State())
	items, err := repo.ListConfirmedByCourtAndDate(t.Context(), "court-1", date)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestIsFailure(t *testing.T) {
	require.False(t, isFailure(fmt.Errorf("save: %w", booking.ErrOverlap)))
	require.False(t, isFailure(context.Canceled))
	require.True(t, isFailure(errDown))
}
