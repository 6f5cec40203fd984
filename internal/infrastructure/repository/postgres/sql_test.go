package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestPQErrorClassification(t *testing.T) {
	exclusion := fmt.Errorf("save booking: %w", &pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})
	unique := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	if !isExclusionViolation(exclusion) {
		t.Fatalf("expected wrapped 23P01 to be an exclusion violation")
	}
	if isUniqueViolation(exclusion) {
		t.Fatalf("exclusion violation must not look like a unique violation")
	}
	if !isUniqueViolation(unique) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if isUniqueViolation(fakeErr("pq: relation lineups does not exist")) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("unexpected not found")
	}
}

func TestNullFloatRoundTrip(t *testing.T) {
	if got := floatFromNull(nullFloat(nil)); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
	v := 40.4168
	got := floatFromNull(nullFloat(&v))
	if got == nil || *got != v {
		t.Fatalf("expected %v, got %v", v, got)
	}
	if nullString("").Valid {
		t.Fatalf("empty string must map to NULL")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
