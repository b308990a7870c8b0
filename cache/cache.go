package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/khudaiyar/aerora/metrics"
)

// Cache wraps a Store with single-flight miss deduplication and JSON value
// encoding. It owns entry lifetime: values go in only through GetOrFetch
// and leave only by expiring.
type Cache struct {
	store   Store
	group   singleflight.Group
	metrics *metrics.CacheMetrics
}

// New creates a Cache over the given backend. cacheType labels the metrics
// series ("memory" or "redis").
func New(store Store, cacheType string) *Cache {
	return &Cache{
		store:   store,
		metrics: metrics.NewCacheMetrics(cacheType),
	}
}

// Delete removes a single entry.
func (c *Cache) Delete(ctx context.Context, key string) {
	c.store.Delete(ctx, key)
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) {
	c.store.Clear(ctx)
}

// GetOrFetch returns the live cached value for key, or invokes fetch to
// produce one. Concurrent callers that miss on the same key share a single
// fetch; cancelling one waiter's context abandons only that waiter, the
// fetch keeps running for the rest. Failed fetches are never stored, so the
// next call retries.
func GetOrFetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if data, found := c.store.Get(ctx, key); found {
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			c.metrics.RecordHit()
			slog.Debug("cache hit", "key", key)
			return value, nil
		}
		// Undecodable entry: drop it and fall through to a fresh fetch.
		c.store.Delete(ctx, key)
	}

	c.metrics.RecordMiss()
	slog.Debug("cache miss", "key", key)

	ch := c.group.DoChan(key, func() (any, error) {
		start := time.Now()
		value, err := fetch(context.WithoutCancel(ctx))
		c.metrics.RecordLatency("fetch", time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}

		c.store.Set(context.WithoutCancel(ctx), key, data, ttl)
		return data, nil
	})

	select {
	case result := <-ch:
		if result.Err != nil {
			return zero, result.Err
		}
		var value T
		if err := json.Unmarshal(result.Val.([]byte), &value); err != nil {
			return zero, err
		}
		return value, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
