package data

import (
	"context"

	"shortlink/internal/domain"
)

// Compile-time interface check
var _ domain.MappingRepository = (*CachedMappingRepository)(nil)

// CachedMappingRepository decorates a MappingRepository with a read-through cache on Find.
// Saves are not cached since they may still be rolled back by the surrounding unit of work.
type CachedMappingRepository struct {
	repo  domain.MappingRepository
	cache MappingCache
}

// NewCachedMappingRepository creates a new cached repository wrapper.
func NewCachedMappingRepository(repo *MappingRepo, cache MappingCache) domain.MappingRepository {
	return &CachedMappingRepository{
		repo:  repo,
		cache: cache,
	}
}

// Exists is never served from cache.
func (r *CachedMappingRepository) Exists(ctx context.Context, alias string) (bool, error) {
	return r.repo.Exists(ctx, alias)
}

// Save persists a mapping.
func (r *CachedMappingRepository) Save(ctx context.Context, m *domain.Mapping) (*domain.Mapping, error) {
	return r.repo.Save(ctx, m)
}

// Find retrieves a mapping, checking the cache first.
func (r *CachedMappingRepository) Find(ctx context.Context, alias string) (*domain.Mapping, error) {
	if cached, err := r.cache.Get(ctx, alias); err == nil && cached != nil {
		return cached, nil
	}

	m, err := r.repo.Find(ctx, alias)
	if err != nil || m == nil {
		return m, err
	}

	_ = r.cache.Set(ctx, m)
	return m, nil
}

// Delete removes a mapping and invalidates the cache. CacheInvalidationHandler evicts
// again after commit.
func (r *CachedMappingRepository) Delete(ctx context.Context, alias string) error {
	if err := r.repo.Delete(ctx, alias); err != nil {
		return err
	}

	_ = r.cache.Invalidate(ctx, alias)
	return nil
}

// ListAll is never served from cache.
func (r *CachedMappingRepository) ListAll(ctx context.Context) ([]*domain.Mapping, error) {
	return r.repo.ListAll(ctx)
}
