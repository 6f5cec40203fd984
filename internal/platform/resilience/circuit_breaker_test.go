package resilience

import (
	"errors"
	"testing"
	"time"
)

var errStorageDown = errors.New("connection refused")

func newTestBreaker(threshold int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: threshold, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})
	now := time.Date(2030, 5, 6, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func failing() error { return errStorageDown }
func succeeding() error { return nil }

func TestCircuitBreaker_OpensAfterThresholdAndRecovers(t *testing.T) {
	b, now := newTestBreaker(2)

	if err := b.Execute(failing, nil); !errors.Is(err, errStorageDown) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Execute(failing, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Execute(func() error { called = true; return nil }, nil)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short circuit, got err=%v called=%v", err, called)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Execute(succeeding, nil); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1)

	_ = b.Execute(failing, nil)
	*now = now.Add(6 * time.Second)

	_ = b.Execute(failing, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestCircuitBreaker_ExpectedErrorsDoNotTrip(t *testing.T) {
	b, _ := newTestBreaker(1)
	errOverlap := errors.New("overlap")
	isFailure := func(err error) bool { return !errors.Is(err, errOverlap) }

	for i := 0; i < 3; i++ {
		if err := b.Execute(func() error { return errOverlap }, isFailure); !errors.Is(err, errOverlap) {
			t.Fatalf("expected overlap error to pass through, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed, got %s", state)
	}
}
