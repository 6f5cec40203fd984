package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/courtside/internal/domain/session"
)

type SessionRepository struct {
	mu    sync.RWMutex
	items map[string]session.Session
	keys  map[string]string
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		items: make(map[string]session.Session),
		keys:  make(map[string]string),
	}
}

func (r *SessionRepository) GetByID(_ context.Context, sessionID string) (session.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[sessionID]
	if !ok {
		return session.Session{}, false, nil
	}
	return cloneSession(item), true, nil
}

func (r *SessionRepository) GetByNaturalKey(_ context.Context, key session.NaturalKey) (session.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.keys[key.String()]
	if !ok {
		return session.Session{}, false, nil
	}
	return cloneSession(r.items[id]), true, nil
}

func (r *SessionRepository) Create(_ context.Context, item session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("session %s already exists", item.ID)
	}
	r.items[item.ID] = cloneSession(item)
	r.keys[item.NaturalKey().String()] = item.ID
	return nil
}

func (r *SessionRepository) Update(_ context.Context, item session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("session %s not found", item.ID)
	}
	if oldKey := current.NaturalKey().String(); r.keys[oldKey] == item.ID {
		delete(r.keys, oldKey)
	}
	r.items[item.ID] = cloneSession(item)
	r.keys[item.NaturalKey().String()] = item.ID
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[sessionID]
	if !ok {
		return nil
	}
	if key := current.NaturalKey().String(); r.keys[key] == sessionID {
		delete(r.keys, key)
	}
	delete(r.items, sessionID)
	return nil
}

func (r *SessionRepository) UpdateToken(_ context.Context, sessionID string, token session.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	current.Token = cloneToken(token)
	r.items[sessionID] = current
	return nil
}

func cloneSession(item session.Session) session.Session {
	copied := item
	copied.Token = cloneToken(item.Token)
	return copied
}

func cloneToken(t session.Token) session.Token {
	copied := t
	copied.Lat = cloneFloat(t.Lat)
	copied.Lng = cloneFloat(t.Lng)
	return copied
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
