package cache

import (
	"context"

	"github.com/riskibarqy/courtside/internal/domain/court"
	basecache "github.com/riskibarqy/courtside/internal/platform/cache"
)

// CourtRepository caches court reads. Courts change only through migrations,
// so entries are never invalidated before their TTL.
type CourtRepository struct {
	next  court.Repository
	cache *basecache.Store
}

func NewCourtRepository(next court.Repository, cache *basecache.Store) *CourtRepository {
	return &CourtRepository{next: next, cache: cache}
}

func (r *CourtRepository) List(ctx context.Context) ([]court.Court, error) {
	v, err := r.cache.GetOrLoad(ctx, "court:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]court.Court(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]court.Court)
	return append([]court.Court(nil), items...), nil
}

func (r *CourtRepository) GetByID(ctx context.Context, courtID string) (court.Court, bool, error) {
	key := "court:id:" + courtID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, courtID)
		if err != nil {
			return nil, err
		}
		return cachedCourtByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return court.Court{}, false, err
	}

	cached, _ := v.(cachedCourtByID)
	return cached.value, cached.exists, nil
}

type cachedCourtByID struct {
	value  court.Court
	exists bool
}
