package court

import "context"

// Repository exposes court lookups.
type Repository interface {
	GetByID(ctx context.Context, courtID string) (Court, bool, error)
	List(ctx context.Context) ([]Court, error)
}
