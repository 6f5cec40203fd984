package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ReloadsAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "court", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "court:id:1", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	now = now.Add(time.Minute)
	if _, err := store.GetOrLoad(context.Background(), "court:id:1", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	loadErr := errors.New("db down")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		return nil, loadErr
	}); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("failed load must not be cached")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(context.Background(), "court:id:1", 1)
	store.Set(context.Background(), "court:id:2", 2)
	store.Set(context.Background(), "court:list", 3)

	store.DeletePrefix(context.Background(), "court:id:")

	if _, ok := store.Get(context.Background(), "court:id:1"); ok {
		t.Fatalf("expected court:id:1 to be evicted")
	}
	if _, ok := store.Get(context.Background(), "court:list"); !ok {
		t.Fatalf("expected court:list to survive")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
