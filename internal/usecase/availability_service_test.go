package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
)

func TestAvailabilityService_Check(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	date := mustDate(t, "2024-03-06")

	existing, err := env.bookings.Reserve(t.Context(), ReserveCourtInput{
		CourtID:   memory.CourtIDCentral,
		Date:      date,
		StartTime: mustTime(t, "10:00"),
		EndTime:   mustTime(t, "10:30"),
		OwnerRef:  booking.UserOwner("coach-1"),
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	tests := []struct {
		name      string
		start     string
		end       string
		excludeID string
		available bool
	}{
		{name: "overlapping start", start: "10:15", end: "11:00", available: false},
		{name: "containing window", start: "09:00", end: "12:00", available: false},
		{name: "touching end is free", start: "10:30", end: "11:00", available: true},
		{name: "touching start is free", start: "09:00", end: "10:00", available: true},
		{name: "excluded booking is ignored", start: "10:00", end: "10:30", excludeID: existing.ID, available: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := env.availability.Check(t.Context(), memory.CourtIDCentral, date, mustTime(t, tc.start), mustTime(t, tc.end), tc.excludeID)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got.Available != tc.available {
				t.Fatalf("available=%v want %v", got.Available, tc.available)
			}
			if !tc.available && (got.Conflict == nil || got.Conflict.ID != existing.ID) {
				t.Fatalf("expected conflict with %s, got %+v", existing.ID, got.Conflict)
			}
		})
	}
}

func TestAvailabilityService_CheckOtherCourtAndDateAreIndependent(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	date := mustDate(t, "2024-03-06")

	if _, err := env.bookings.Reserve(t.Context(), ReserveCourtInput{
		CourtID: memory.CourtIDCentral, Date: date,
		StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "11:00"),
		OwnerRef: booking.UserOwner("coach-1"),
	}); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	got, err := env.availability.Check(t.Context(), memory.CourtIDNorth, date, mustTime(t, "10:00"), mustTime(t, "11:00"), "")
	if err != nil || !got.Available {
		t.Fatalf("other court must be free: %+v err=%v", got, err)
	}
	got, err = env.availability.Check(t.Context(), memory.CourtIDCentral, mustDate(t, "2024-03-07"), mustTime(t, "10:00"), mustTime(t, "11:00"), "")
	if err != nil || !got.Available {
		t.Fatalf("other date must be free: %+v err=%v", got, err)
	}
}

func TestAvailabilityService_CheckRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	date := mustDate(t, "2024-03-06")

	_, err := env.availability.Check(t.Context(), memory.CourtIDCentral, date, mustTime(t, "11:00"), mustTime(t, "10:00"), "")
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, schedule.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}

	_, err = env.availability.Check(t.Context(), memory.CourtIDCentral, date, mustTime(t, "10:00"), mustTime(t, "10:00"), "")
	if !errors.Is(err, schedule.ErrInvalidRange) {
		t.Fatalf("expected empty window to be invalid, got %v", err)
	}

	_, err = env.availability.Check(t.Context(), "missing-court", date, mustTime(t, "10:00"), mustTime(t, "11:00"), "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = env.availability.Check(t.Context(), memory.CourtIDIndoorOld, date, mustTime(t, "10:00"), mustTime(t, "11:00"), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected inactive court to be rejected, got %v", err)
	}
}

func TestBookingService_ReserveConflictAndCancel(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	input := ReserveCourtInput{
		CourtID:   memory.CourtIDCentral,
		Date:      mustDate(t, "2024-03-06"),
		StartTime: mustTime(t, "18:00"),
		EndTime:   mustTime(t, "19:30"),
		OwnerRef:  booking.UserOwner("player-7"),
	}

	first, err := env.bookings.Reserve(t.Context(), input)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	input.StartTime = mustTime(t, "19:00")
	input.EndTime = mustTime(t, "20:00")
	_, err = env.bookings.Reserve(t.Context(), input)
	conflict, ok := ConflictFrom(err)
	if !ok || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if conflict.ExistingID != first.ID || conflict.Date != "2024-03-06" {
		t.Fatalf("unexpected conflict details: %+v", conflict)
	}

	if err := env.bookings.Cancel(t.Context(), first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := env.bookings.Reserve(t.Context(), input); err != nil {
		t.Fatalf("reserve after cancel: %v", err)
	}

	if err := env.bookings.Cancel(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAvailabilityService_ListCourtsSkipsInactive(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	items, err := env.availability.ListCourts(t.Context())
	if err != nil {
		t.Fatalf("list courts: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 active courts, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == memory.CourtIDIndoorOld {
			t.Fatalf("inactive court must not be listed")
		}
	}
}
