package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/courtside/internal/domain/court"
)

type CourtRepository struct {
	mu     sync.RWMutex
	items  map[string]court.Court
	orders []string
}

func NewCourtRepository(courts []court.Court) *CourtRepository {
	items := make(map[string]court.Court, len(courts))
	orders := make([]string, 0, len(courts))
	for _, c := range courts {
		items[c.ID] = c
		orders = append(orders, c.ID)
	}

	return &CourtRepository{
		items:  items,
		orders: orders,
	}
}

func (r *CourtRepository) List(_ context.Context) ([]court.Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]court.Court, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *CourtRepository) GetByID(_ context.Context, courtID string) (court.Court, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[courtID]
	if !ok {
		return court.Court{}, false, nil
	}
	return c, true, nil
}
