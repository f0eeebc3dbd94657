package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productCachePrefix = "product:detail:"
	cacheVersionKey    = "catalog:version"
)

// CatalogCache caches rendered product responses in Redis. Detail keys
// embed a version counter; bumping the version on any catalog write
// invalidates every cached entry at once, so stale ancestor names can
// never be served. A nil cache is a valid no-op.
type CatalogCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache creates a CatalogCache. The client may be nil when
// Redis is unavailable; every operation then degrades to a miss.
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{redis: client, ttl: ttl, logger: logger}
}

func (cm *CatalogCache) enabled() bool {
	return cm != nil && cm.redis != nil
}

func (cm *CatalogCache) version(ctx context.Context) int64 {
	version, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		return 0
	}
	return version
}

// GetProduct retrieves a cached product response.
func (cm *CatalogCache) GetProduct(ctx context.Context, slug string) (*ProductResponse, bool) {
	if !cm.enabled() {
		return nil, false
	}

	key := fmt.Sprintf("%sv%d:%s", productCachePrefix, cm.version(ctx), slug)
	cached, err := cm.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var resp ProductResponse
	if err := json.Unmarshal([]byte(cached), &resp); err != nil {
		cm.logger.Warn("failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &resp, true
}

// SetProduct caches a product response with the configured TTL.
func (cm *CatalogCache) SetProduct(ctx context.Context, slug string, resp *ProductResponse) {
	if !cm.enabled() {
		return
	}

	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		cm.logger.Warn("failed to marshal product for cache", zap.Error(err))
		return
	}

	key := fmt.Sprintf("%sv%d:%s", productCachePrefix, cm.version(ctx), slug)
	if err := cm.redis.Set(ctx, key, jsonBytes, cm.ttl).Err(); err != nil {
		cm.logger.Warn("failed to cache product", zap.Error(err))
	}
}

// Invalidate bumps the cache version, orphaning every cached entry.
// Orphans expire through their TTL.
func (cm *CatalogCache) Invalidate(ctx context.Context) {
	if !cm.enabled() {
		return
	}
	if err := cm.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		cm.logger.Warn("failed to bump catalog cache version", zap.Error(err))
	}
}
