package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

// BookingRepository enforces the no-overlap invariant under its write lock,
// standing in for the exclusion constraint of the SQL schema.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[string]booking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[string]booking.Booking)}
}

func (r *BookingRepository) GetByID(_ context.Context, bookingID string) (booking.Booking, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[bookingID]
	return item, ok, nil
}

func (r *BookingRepository) ListConfirmedByCourtAndDate(_ context.Context, courtID string, date time.Time) ([]booking.Booking, error) {
	day := schedule.DateOf(date)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]booking.Booking, 0)
	for _, item := range r.items {
		if item.CourtID == courtID && item.Date.Equal(day) && item.Confirmed() {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *BookingRepository) Save(_ context.Context, item booking.Booking) error {
	item.Date = schedule.DateOf(item.Date)

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.Confirmed() {
		for _, existing := range r.items {
			if existing.Confirmed() && existing.Conflicts(item) {
				return booking.ErrOverlap
			}
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *BookingRepository) Cancel(_ context.Context, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[bookingID]
	if !ok {
		return nil
	}
	item.Status = booking.StatusCancelled
	r.items[bookingID] = item
	return nil
}
