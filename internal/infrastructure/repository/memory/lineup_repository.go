package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/courtside/internal/domain/lineup"
)

// LineupRepository keeps one lineup per session. Replace swaps the entry
// under the write lock so readers never see zero or two lineups.
type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) GetBySession(_ context.Context, sessionID string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[sessionID]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return lineup.Clone(item), true, nil
}

func (r *LineupRepository) Create(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.SessionID]; exists {
		return lineup.ErrAlreadyExists
	}
	r.items[item.SessionID] = lineup.Clone(item)
	return nil
}

func (r *LineupRepository) Replace(_ context.Context, item lineup.Lineup) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removedID string
	if existing, ok := r.items[item.SessionID]; ok {
		removedID = existing.ID
	}
	r.items[item.SessionID] = lineup.Clone(item)
	return removedID, nil
}

func (r *LineupRepository) DeleteBySession(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[sessionID]; !ok {
		return false, nil
	}
	delete(r.items, sessionID)
	return true, nil
}
