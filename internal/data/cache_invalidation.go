package data

import (
	"context"

	"shortlink/internal/domain/event"
	"shortlink/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ eventbus.EventHandler = (*CacheInvalidationHandler)(nil)

// CacheInvalidationHandler evicts deleted aliases once their deletion has committed.
// CachedMappingRepository.Delete evicts inside the transaction, and a concurrent Find
// may refill the entry before the commit; this second eviction removes that entry.
type CacheInvalidationHandler struct {
	cache MappingCache
	log   *log.Helper
}

// NewCacheInvalidationHandler creates a handler for mapping.deleted events.
func NewCacheInvalidationHandler(cache MappingCache, logger log.Logger) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{
		cache: cache,
		log:   log.NewHelper(log.With(logger, "module", "data/cache-invalidation")),
	}
}

func (h *CacheInvalidationHandler) HandlerName() string {
	return "cache_invalidation_" + event.MappingDeletedName
}

func (h *CacheInvalidationHandler) EventName() string {
	return event.MappingDeletedName
}

// Handle evicts the event's alias. The aggregate id is the alias.
func (h *CacheInvalidationHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	if envelope.AggregateID == "" {
		return nil
	}
	if err := h.cache.Invalidate(ctx, envelope.AggregateID); err != nil {
		h.log.WithContext(ctx).Warnf("failed to evict %s after delete: %v", envelope.AggregateID, err)
	}
	return nil
}
