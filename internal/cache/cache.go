// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/tomtom215/mealshare/internal/metrics"
)

// Cache is a TTL cache of values of type V keyed by string.
type Cache[V any] struct {
	name  string
	ttl   time.Duration
	store *ristretto.Cache[string, V]

	mu    sync.RWMutex
	stats Stats
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	LastCleared time.Time
}

// New creates a cache whose entries expire after ttl.
// The name labels the cache in Prometheus metrics.
func New[V any](name string, ttl time.Duration) (*Cache[V], error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cache: %w", name, err)
	}
	return &Cache[V]{name: name, ttl: ttl, store: store}, nil
}

// Get returns the cached value and whether it was present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.store.Get(key)

	c.mu.Lock()
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()

	if ok {
		metrics.CacheHits.WithLabelValues(c.name).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
	}
	return v, ok
}

// Set stores value with the default TTL. It returns once the value is
// visible to Get. A value rejected by the admission policy is dropped.
func (c *Cache[V]) Set(key string, value V) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	ok := c.store.SetWithTTL(key, value, 1, ttl)
	c.store.Wait()
	return ok
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.store.Clear()

	c.mu.Lock()
	c.stats.LastCleared = time.Now()
	c.mu.Unlock()
	c.recordEvictions(1)
}

// Stats returns a snapshot of the counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups.
func (c *Cache[V]) HitRate() float64 {
	s := c.Stats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Close stops the background goroutines of the underlying store.
func (c *Cache[V]) Close() {
	c.store.Close()
}

func (c *Cache[V]) recordEvictions(n int64) {
	c.mu.Lock()
	c.stats.Evictions += n
	c.mu.Unlock()
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
}

// Key builds a cache key from a prefix and an ID.
func Key(prefix string, id int64) string {
	return fmt.Sprintf("%s:%d", prefix, id)
}
