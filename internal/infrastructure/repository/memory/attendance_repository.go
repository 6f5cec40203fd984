package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/courtside/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu    sync.RWMutex
	items map[string]attendance.Record
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{items: make(map[string]attendance.Record)}
}

func (r *AttendanceRepository) Upsert(_ context.Context, item attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey(item.SessionID, item.PlayerID)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
	}
	r.items[key] = cloneRecord(item)
	return cloneRecord(item), nil
}

func (r *AttendanceRepository) ListBySession(_ context.Context, sessionID string) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, item := range r.items {
		if item.SessionID == sessionID {
			out = append(out, cloneRecord(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *AttendanceRepository) DeleteBySession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.SessionID == sessionID {
			delete(r.items, key)
		}
	}
	return nil
}

func attendanceKey(sessionID, playerID string) string {
	return sessionID + "::" + playerID
}

func cloneRecord(item attendance.Record) attendance.Record {
	copied := item
	copied.Lat = cloneFloat(item.Lat)
	copied.Lng = cloneFloat(item.Lng)
	return copied
}
