package data

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shortlink/internal/conf"
	"shortlink/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

const mappingCachePrefix = "mapping:"

// MappingCache defines the interface for mapping caching operations.
// Implementations treat every failure as a miss and return nil, nil.
type MappingCache interface {
	// Get retrieves a mapping from cache by alias.
	Get(ctx context.Context, alias string) (*domain.Mapping, error)

	// Set stores a mapping in the cache.
	Set(ctx context.Context, m *domain.Mapping) error

	// Invalidate removes a mapping from the cache.
	Invalidate(ctx context.Context, alias string) error
}

// Compile-time interface checks
var (
	_ MappingCache = (*RedisMappingCache)(nil)
	_ MappingCache = (*noopMappingCache)(nil)
)

// RedisMappingCache implements MappingCache using Redis.
type RedisMappingCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *log.Helper
}

// NewMappingCache returns a Redis-backed cache, or a no-op cache when Redis is not configured.
func NewMappingCache(data *Data, c *conf.Data, logger log.Logger) MappingCache {
	if data.rdb == nil {
		return &noopMappingCache{}
	}
	ttl := conf.DefaultCacheTTL
	if c.Redis != nil && c.Redis.CacheTTL > 0 {
		ttl = c.Redis.CacheTTL.AsDuration()
	}
	return NewRedisMappingCache(data.rdb, ttl, logger)
}

// NewRedisMappingCache creates a new Redis-based mapping cache.
func NewRedisMappingCache(rdb *redis.Client, ttl time.Duration, logger log.Logger) *RedisMappingCache {
	return &RedisMappingCache{
		rdb: rdb,
		ttl: ttl,
		log: log.NewHelper(log.With(logger, "module", "data/cache")),
	}
}

func (c *RedisMappingCache) cacheKey(alias string) string {
	return mappingCachePrefix + alias
}

// Get retrieves a mapping from Redis.
func (c *RedisMappingCache) Get(ctx context.Context, alias string) (*domain.Mapping, error) {
	data, err := c.rdb.Get(ctx, c.cacheKey(alias)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithContext(ctx).Warnf("failed to get mapping from cache: %v", err)
		}
		return nil, nil
	}

	var m domain.Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		c.log.WithContext(ctx).Warnf("failed to unmarshal cached mapping: %v", err)
		return nil, nil
	}
	return &m, nil
}

// Set stores a mapping in Redis.
func (c *RedisMappingCache) Set(ctx context.Context, m *domain.Mapping) error {
	data, err := json.Marshal(m)
	if err != nil {
		c.log.WithContext(ctx).Warnf("failed to marshal mapping for cache: %v", err)
		return nil
	}

	if err := c.rdb.Set(ctx, c.cacheKey(m.Alias), data, c.ttl).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("failed to cache mapping: %v", err)
	}
	return nil
}

// Invalidate removes a mapping from Redis.
func (c *RedisMappingCache) Invalidate(ctx context.Context, alias string) error {
	if err := c.rdb.Del(ctx, c.cacheKey(alias)).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("failed to invalidate mapping cache: %v", err)
	}
	return nil
}

// noopMappingCache is used when Redis is not configured.
type noopMappingCache struct{}

func (noopMappingCache) Get(context.Context, string) (*domain.Mapping, error) { return nil, nil }

func (noopMappingCache) Set(context.Context, *domain.Mapping) error { return nil }

func (noopMappingCache) Invalidate(context.Context, string) error { return nil }
