package booking

import (
	"context"
	"time"
)

// Repository persists court bookings. Save must reject with ErrOverlap any
// write that would leave two overlapping confirmed bookings on a court/date.
type Repository interface {
	GetByID(ctx context.Context, bookingID string) (Booking, bool, error)
	ListConfirmedByCourtAndDate(ctx context.Context, courtID string, date time.Time) ([]Booking, error)
	Save(ctx context.Context, item Booking) error
	Cancel(ctx context.Context, bookingID string) error
}
