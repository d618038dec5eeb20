// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package cache provides a typed, thread-safe TTL cache.

The cache is a thin layer over ristretto that adds:
  - synchronous writes, so a Get after Set observes the value
  - whole-cache invalidation after writes to the underlying data
  - Prometheus hit, miss and eviction counters labelled by cache name

# Usage Example

	c, err := cache.New[[]models.Dish]("recommend", 5*time.Minute)
	if err != nil {
	    return err
	}
	defer c.Close()

	c.Set(cache.Key("recommend", dishID), dishes)
	if dishes, ok := c.Get(cache.Key("recommend", dishID)); ok {
	    return dishes
	}

	// After a dish write
	c.Clear()
*/
package cache
