package historical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/kv"
)

// DefaultCacheTTL is how long a cached aggregate stays fresh.
const DefaultCacheTTL = time.Hour

// CacheKey builds the store key for a location and date range.
func CacheKey(locationID, startDate, endDate string) string {
	return fmt.Sprintf("historical_weather_%s_%s_%s", locationID, startDate, endDate)
}

// cacheEnvelope wraps a cached aggregate with its expiry metadata.
type cacheEnvelope struct {
	Data      *Aggregate `json:"data"`
	Timestamp int64      `json:"timestamp"`
	TTLMillis int64      `json:"ttl"`
}

// Cache stores aggregates in a kv.Store with lazy TTL expiry: stale entries
// are deleted on read, not by a background sweep. Cache failures are logged
// and treated as misses; they never fail the request.
type Cache struct {
	store  kv.Store
	logger zerolog.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewCache creates a cache over the given store.
func NewCache(store kv.Store, logger zerolog.Logger, ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		store:  store,
		logger: logger,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached aggregate for a key, or (nil, false) on a miss,
// an expired entry, or any store error.
func (c *Cache) Get(ctx context.Context, key string) (*Aggregate, bool) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to read cache")
		}
		return nil, false
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("corrupt cache entry")
		_ = c.store.Delete(ctx, key)
		return nil, false
	}

	age := c.now().UnixMilli() - envelope.Timestamp
	if age > envelope.TTLMillis {
		_ = c.store.Delete(ctx, key)
		return nil, false
	}
	return envelope.Data, envelope.Data != nil
}

// Set stores an aggregate under a key. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, aggregate *Aggregate) {
	envelope := cacheEnvelope{
		Data:      aggregate,
		Timestamp: c.now().UnixMilli(),
		TTLMillis: c.ttl.Milliseconds(),
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}
