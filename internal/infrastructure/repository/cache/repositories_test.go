package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/court"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/courtside/internal/platform/cache"
)

type countingCourts struct {
	next    court.Repository
	lists   int
	gets    int
	failGet error
}

func (c *countingCourts) List(ctx context.Context) ([]court.Court, error) {
	c.lists++
	return c.next.List(ctx)
}

func (c *countingCourts) GetByID(ctx context.Context, courtID string) (court.Court, bool, error) {
	c.gets++
	if c.failGet != nil {
		return court.Court{}, false, c.failGet
	}
	return c.next.GetByID(ctx, courtID)
}

func TestCourtRepository_CachesReads(t *testing.T) {
	ctx := context.Background()
	inner := &countingCourts{next: memory.NewCourtRepository(memory.SeedCourts())}
	repo := NewCourtRepository(inner, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list courts: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 seeded courts, got %d", len(items))
		}
		items[0].Name = "mutated"
	}
	if inner.lists != 1 {
		t.Fatalf("expected one underlying list, got %d", inner.lists)
	}

	items, _ := repo.List(ctx)
	if items[0].Name == "mutated" {
		t.Fatalf("cached slice must not be shared with callers")
	}

	for i := 0; i < 2; i++ {
		if _, exists, err := repo.GetByID(ctx, "missing"); err != nil || exists {
			t.Fatalf("expected missing court, exists=%v err=%v", exists, err)
		}
	}
	if inner.gets != 1 {
		t.Fatalf("expected negative lookup to be cached, got %d loads", inner.gets)
	}
}

func TestCourtRepository_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	inner := &countingCourts{next: memory.NewCourtRepository(memory.SeedCourts()), failGet: errors.New("db down")}
	repo := NewCourtRepository(inner, basecache.NewStore(time.Minute))

	if _, _, err := repo.GetByID(ctx, memory.CourtIDCentral); err == nil {
		t.Fatalf("expected load error")
	}
	inner.failGet = nil
	item, exists, err := repo.GetByID(ctx, memory.CourtIDCentral)
	if err != nil || !exists {
		t.Fatalf("expected court after recovery, exists=%v err=%v", exists, err)
	}
	if item.ID != memory.CourtIDCentral {
		t.Fatalf("unexpected court %+v", item)
	}
	if inner.gets != 2 {
		t.Fatalf("expected a second load after the error, got %d", inner.gets)
	}
}
