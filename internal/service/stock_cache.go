package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	stockCacheKeyPrefix = "stock:"
	stockCacheTTL       = 30 * time.Second
)

// StockCache is a Redis read-through cache for per-product availability.
// Entries carry a short TTL and are explicitly dropped on every mutation
// that changes the availability input (order placed or canceled, import
// approved, disposal, procurement). A nil client disables caching.
type StockCache struct {
	rdb *redis.Client
}

func NewStockCache(rdb *redis.Client) *StockCache {
	return &StockCache{rdb: rdb}
}

// Get returns the cached availability, or ok=false on miss / disabled cache.
func (c *StockCache) Get(ctx context.Context, productID uuid.UUID) (int, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, stockCacheKeyPrefix+productID.String()).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set stores the availability with the cache TTL. Best effort.
func (c *StockCache) Set(ctx context.Context, productID uuid.UUID, available int) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, stockCacheKeyPrefix+productID.String(), available, stockCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("product_id", productID.String()).Msg("stock cache: set failed")
	}
}

// Invalidate drops cached entries for the given products. Best effort —
// a missed invalidation self-heals at TTL expiry.
func (c *StockCache) Invalidate(ctx context.Context, productIDs ...uuid.UUID) {
	if c == nil || c.rdb == nil || len(productIDs) == 0 {
		return
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = stockCacheKeyPrefix + id.String()
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("stock cache: invalidate failed")
	}
}
