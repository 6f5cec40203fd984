package lineup

import "context"

// Repository exposes lineup persistence keyed by session.
type Repository interface {
	GetBySession(ctx context.Context, sessionID string) (Lineup, bool, error)
	// Create fails with ErrAlreadyExists when the session already has a lineup.
	Create(ctx context.Context, item Lineup) error
	// Replace removes the session's current lineup, if any, and stores item
	// in the same transaction. It returns the id of the removed lineup.
	Replace(ctx context.Context, item Lineup) (string, error)
	DeleteBySession(ctx context.Context, sessionID string) (bool, error)
}
