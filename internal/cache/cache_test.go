// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package cache

import (
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache[string] {
	t.Helper()
	c, err := New[string]("test", ttl)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestCacheBasicOperations(t *testing.T) {
	c := newTestCache(t, time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Get(key1) = %v, want value1", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", stats)
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("HitRate() = %v, want 50", rate)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)

	c.Set("key1", "value1")
	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist immediately after set")
	}

	time.Sleep(1100 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestCacheZeroTTLIsNoop(t *testing.T) {
	c := newTestCache(t, 0)

	if c.Set("key1", "value1") {
		t.Error("Set() with zero TTL = true, want false")
	}
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to not be stored")
	}
}

func TestCacheClear(t *testing.T) {
	c := newTestCache(t, time.Minute)

	for _, key := range []string{"key1", "key2", "key3"} {
		c.Set(key, "v")
	}
	c.Clear()

	for _, key := range []string{"key1", "key2", "key3"} {
		if _, exists := c.Get(key); exists {
			t.Errorf("Expected %s to be cleared", key)
		}
	}
	if c.Stats().LastCleared.IsZero() {
		t.Error("Expected LastCleared to be set")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := newTestCache(t, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key("dish", int64(i))
			c.Set(key, "v")
			c.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestKey(t *testing.T) {
	t.Parallel()

	if got := Key("recommend", 42); got != "recommend:42" {
		t.Errorf("Key() = %q, want recommend:42", got)
	}
}
