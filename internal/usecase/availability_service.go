package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/court"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

// AvailabilityResult is advisory. The booking store has the final say.
type AvailabilityResult struct {
	Available bool
	Conflict  *booking.Booking
}

type AvailabilityService struct {
	courtRepo   court.Repository
	bookingRepo booking.Repository
}

func NewAvailabilityService(courtRepo court.Repository, bookingRepo booking.Repository) *AvailabilityService {
	return &AvailabilityService{
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
	}
}

// Check reports whether courtID is free on date for [start, end), ignoring
// the booking excludeID. It returns the first overlapping booking found.
func (s *AvailabilityService) Check(
	ctx context.Context,
	courtID string,
	date time.Time,
	start, end schedule.TimeOfDay,
	excludeID string,
) (AvailabilityResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.Check",
		attribute.String("court.id", courtID),
		attribute.String("booking.date", schedule.FormatDate(date)),
	)
	defer span.End()

	window, err := schedule.NewInterval(start, end)
	if err != nil {
		return AvailabilityResult{}, invalidInput(err)
	}
	if _, err := s.RequireCourt(ctx, courtID); err != nil {
		return AvailabilityResult{}, err
	}

	existing, err := s.bookingRepo.ListConfirmedByCourtAndDate(ctx, courtID, schedule.DateOf(date))
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("list bookings for court %s: %w", courtID, err)
	}

	excludeID = strings.TrimSpace(excludeID)
	for _, item := range existing {
		if excludeID != "" && item.ID == excludeID {
			continue
		}
		if item.Interval().Overlaps(window) {
			conflict := item
			return AvailabilityResult{Available: false, Conflict: &conflict}, nil
		}
	}
	return AvailabilityResult{Available: true}, nil
}

// RequireCourt loads an active court or fails with ErrNotFound/ErrInvalidInput.
func (s *AvailabilityService) RequireCourt(ctx context.Context, courtID string) (court.Court, error) {
	courtID = strings.TrimSpace(courtID)
	if courtID == "" {
		return court.Court{}, fmt.Errorf("%w: court_id is required", ErrInvalidInput)
	}

	item, exists, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		return court.Court{}, fmt.Errorf("get court by id: %w", err)
	}
	if !exists {
		return court.Court{}, fmt.Errorf("%w: court=%s", ErrNotFound, courtID)
	}
	if !item.Active {
		return court.Court{}, fmt.Errorf("%w: court %s is not active", ErrInvalidInput, courtID)
	}
	return item, nil
}

// ListCourts returns the active courts.
func (s *AvailabilityService) ListCourts(ctx context.Context) ([]court.Court, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.ListCourts")
	defer span.End()

	items, err := s.courtRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	out := make([]court.Court, 0, len(items))
	for _, item := range items {
		if item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}
