package attendance

import "context"

// Repository persists attendance records keyed by (session, player).
type Repository interface {
	// Upsert inserts or overwrites the record for item's session and player,
	// keeping the existing record id when one exists.
	Upsert(ctx context.Context, item Record) (Record, error)
	ListBySession(ctx context.Context, sessionID string) ([]Record, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}
