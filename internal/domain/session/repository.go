package session

import "context"

// Repository exposes training session persistence.
type Repository interface {
	GetByID(ctx context.Context, sessionID string) (Session, bool, error)
	GetByNaturalKey(ctx context.Context, key NaturalKey) (Session, bool, error)
	Create(ctx context.Context, item Session) error
	Update(ctx context.Context, item Session) error
	Delete(ctx context.Context, sessionID string) error
	// UpdateToken replaces the whole token sub-state in one write.
	UpdateToken(ctx context.Context, sessionID string, token Token) error
}
