package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
	qb "github.com/riskibarqy/courtside/internal/platform/querybuilder"
)

// BookingRepository relies on the court_bookings_no_overlap exclusion
// constraint; a violation surfaces as booking.ErrOverlap.
type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (booking.Booking, bool, error) {
	query, args, err := qb.Select(bookingColumns...).
		From("court_bookings").
		Where(qb.Eq("id", bookingID)).
		ToSQL()
	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("build get booking query: %w", err)
	}

	var row bookingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return booking.Booking{}, false, nil
		}
		return booking.Booking{}, false, fmt.Errorf("get booking: %w", err)
	}
	return bookingFromRow(row), true, nil
}

func (r *BookingRepository) ListConfirmedByCourtAndDate(ctx context.Context, courtID string, date time.Time) ([]booking.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From("court_bookings").
		Where(
			qb.Eq("court_id", courtID),
			qb.Eq("booking_date", schedule.FormatDate(date)),
			qb.Eq("status", string(booking.StatusConfirmed)),
		).
		OrderBy("start_minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query: %w", err)
	}

	var rows []bookingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings by court and date: %w", err)
	}

	out := make([]booking.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, bookingFromRow(row))
	}
	return out, nil
}

func (r *BookingRepository) Save(ctx context.Context, item booking.Booking) error {
	query, args, err := qb.InsertModel("court_bookings", bookingInsertFromDomain(item), `ON CONFLICT (id) DO UPDATE SET
    court_id = EXCLUDED.court_id,
    booking_date = EXCLUDED.booking_date,
    start_minute = EXCLUDED.start_minute,
    end_minute = EXCLUDED.end_minute,
    owner_ref = EXCLUDED.owner_ref,
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build save booking query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: %v", booking.ErrOverlap, err)
		}
		return fmt.Errorf("save booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) Cancel(ctx context.Context, bookingID string) error {
	query, args, err := qb.Update("court_bookings").
		Set("status", string(booking.StatusCancelled)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", bookingID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build cancel booking query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}
