package postgres

import (
	"time"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

var bookingColumns = []string{
	"id", "court_id", "booking_date", "start_minute", "end_minute",
	"owner_ref", "status", "created_at", "updated_at",
}

type bookingTableModel struct {
	ID          string    `db:"id"`
	CourtID     string    `db:"court_id"`
	BookingDate time.Time `db:"booking_date"`
	StartMinute int       `db:"start_minute"`
	EndMinute   int       `db:"end_minute"`
	OwnerRef    string    `db:"owner_ref"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type bookingInsertModel struct {
	ID          string    `db:"id"`
	CourtID     string    `db:"court_id"`
	BookingDate string    `db:"booking_date"`
	StartMinute int       `db:"start_minute"`
	EndMinute   int       `db:"end_minute"`
	OwnerRef    string    `db:"owner_ref"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func bookingFromRow(row bookingTableModel) booking.Booking {
	return booking.Booking{
		ID:        row.ID,
		CourtID:   row.CourtID,
		Date:      schedule.DateOf(row.BookingDate),
		StartTime: schedule.TimeOfDay(row.StartMinute),
		EndTime:   schedule.TimeOfDay(row.EndMinute),
		OwnerRef:  row.OwnerRef,
		Status:    booking.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func bookingInsertFromDomain(item booking.Booking) bookingInsertModel {
	return bookingInsertModel{
		ID:          item.ID,
		CourtID:     item.CourtID,
		BookingDate: schedule.FormatDate(item.Date),
		StartMinute: int(item.StartTime),
		EndMinute:   int(item.EndTime),
		OwnerRef:    item.OwnerRef,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
