package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

type ReserveCourtInput struct {
	CourtID   string
	Date      time.Time
	StartTime schedule.TimeOfDay
	EndTime   schedule.TimeOfDay
	OwnerRef  string
}

// BookingService is the only writer of court bookings. Every claim runs
// check-then-save under a per-(court, date) lock.
type BookingService struct {
	availability *AvailabilityService
	bookingRepo  booking.Repository
	locks        *resilience.KeyedMutex
	idGen        id.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewBookingService(
	availability *AvailabilityService,
	bookingRepo booking.Repository,
	locks *resilience.KeyedMutex,
	idGen id.Generator,
	logger *logging.Logger,
) *BookingService {
	if locks == nil {
		locks = resilience.NewKeyedMutex()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &BookingService{
		availability: availability,
		bookingRepo:  bookingRepo,
		locks:        locks,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *BookingService) Reserve(ctx context.Context, input ReserveCourtInput) (booking.Booking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BookingService.Reserve")
	defer span.End()

	owner := strings.TrimSpace(input.OwnerRef)
	if owner == "" {
		return booking.Booking{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return booking.Booking{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookingID, err := s.idGen.NewID()
	if err != nil {
		return booking.Booking{}, fmt.Errorf("generate booking id: %w", err)
	}

	now := s.now().UTC()
	item := booking.Booking{
		ID:        bookingID,
		CourtID:   strings.TrimSpace(input.CourtID),
		Date:      schedule.DateOf(input.Date),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		OwnerRef:  owner,
		Status:    booking.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.claim(ctx, item); err != nil {
		return booking.Booking{}, err
	}

	s.logger.InfoContext(ctx, "court reserved",
		"booking_id", item.ID,
		"court_id", item.CourtID,
		"date", schedule.FormatDate(item.Date),
		"window", item.Interval().String(),
	)
	return item, nil
}

// Cancel releases a booking. Session-owned bookings are released through
// the session instead.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BookingService.Cancel")
	defer span.End()

	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return fmt.Errorf("%w: booking_id is required", ErrInvalidInput)
	}

	item, exists, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("get booking by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: booking=%s", ErrNotFound, bookingID)
	}
	if item.OwnedBySession() {
		return fmt.Errorf("%w: booking %s belongs to a training session", ErrInvalidInput, bookingID)
	}
	if err := s.release(ctx, item); err != nil {
		return err
	}
	return nil
}

// claim stores item if its window is still free. item.ID is excluded from
// the check so an existing booking can be moved.
func (s *BookingService) claim(ctx context.Context, item booking.Booking) error {
	unlock, err := s.locks.Lock(ctx, courtDateLockKey(item.CourtID, item.Date))
	if err != nil {
		return fmt.Errorf("lock court %s: %w", item.CourtID, err)
	}
	defer unlock()

	result, err := s.availability.Check(ctx, item.CourtID, item.Date, item.StartTime, item.EndTime, item.ID)
	if err != nil {
		return err
	}
	if !result.Available {
		return &ConflictError{
			Resource:   ConflictResourceBooking,
			ExistingID: result.Conflict.ID,
			Date:       schedule.FormatDate(item.Date),
		}
	}

	if err := s.bookingRepo.Save(ctx, item); err != nil {
		if errors.Is(err, booking.ErrOverlap) {
			return &ConflictError{
				Resource: ConflictResourceBooking,
				Date:     schedule.FormatDate(item.Date),
				Err:      err,
			}
		}
		return fmt.Errorf("save booking: %w", err)
	}
	return nil
}

func (s *BookingService) release(ctx context.Context, item booking.Booking) error {
	unlock, err := s.locks.Lock(ctx, courtDateLockKey(item.CourtID, item.Date))
	if err != nil {
		return fmt.Errorf("lock court %s: %w", item.CourtID, err)
	}
	defer unlock()

	if err := s.bookingRepo.Cancel(ctx, item.ID); err != nil {
		return fmt.Errorf("cancel booking %s: %w", item.ID, err)
	}
	return nil
}

// releaseByID cancels a booking when it exists and is still confirmed.
func (s *BookingService) releaseByID(ctx context.Context, bookingID string) error {
	item, exists, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("get booking by id: %w", err)
	}
	if !exists || !item.Confirmed() {
		return nil
	}
	return s.release(ctx, item)
}
