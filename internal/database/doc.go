// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package database provides the DuckDB-backed store for Mealshare.
//
// # Overview
//
// The package owns four tables:
//   - roles: the fixed admin, partner and volunteer roles
//   - accounts: logins with bcrypt password hashes and a role
//   - dishes: catalog entries with an ingredients JSON column
//   - favorites: account to dish links, unique per pair
//
// Files:
//   - database.go: connection lifecycle (New, Ping, Close)
//   - database_schema.go: idempotent table, sequence and index creation
//   - database_utils.go: context timeouts and query metrics
//   - crud_accounts.go, crud_dishes.go, crud_favorites.go: CRUD operations
//   - recommend_source.go: adapter implementing recommend.DataProvider
//   - seed.go: demo catalog for local development
//
// # Referential Integrity
//
// DuckDB does not support ON DELETE CASCADE, so the tables carry no foreign
// keys. Deletes that cascade (an account to its dishes and favorites, a dish
// to its favorites) run inside a single transaction instead.
//
// # Errors
//
// Lookups that find nothing return ErrNotFound. A login that is already
// taken returns ErrDuplicateLogin. Everything else is wrapped with context
// and returned as is.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	dish, err := db.GetDish(ctx, 42)
//	if errors.Is(err, database.ErrNotFound) {
//	    // 404
//	}
package database
