// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/mealshare/internal/models"
)

// AddFavorite links a dish to an account. It is idempotent: created is
// false when the link already existed. Returns ErrNotFound if the dish
// does not exist.
func (db *DB) AddFavorite(ctx context.Context, accountID, dishID int64) (created bool, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	var exists bool
	if err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM dishes WHERE id = ?)`, dishID,
	).Scan(&exists); err != nil {
		recordQuery("insert", "favorites", start, err)
		return false, fmt.Errorf("failed to check dish: %w", err)
	}
	if !exists {
		return false, ErrNotFound
	}

	// DuckDB-native: ON CONFLICT DO NOTHING handles the unique (account_id, dish_id) pair
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO favorites (account_id, dish_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (account_id, dish_id) DO NOTHING`,
		accountID, dishID, time.Now().UTC(),
	)
	recordQuery("insert", "favorites", start, err)
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// RemoveFavorite unlinks a dish from an account. Removing a link that does
// not exist is not an error.
func (db *DB) RemoveFavorite(ctx context.Context, accountID, dishID int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE account_id = ? AND dish_id = ?`,
		accountID, dishID,
	)
	recordQuery("delete", "favorites", start, err)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the favorite dishes of an account, oldest favorite first.
func (db *DB) ListFavorites(ctx context.Context, accountID int64) ([]models.Dish, error) {
	return db.queryDishes(ctx, "favorites",
		`SELECT `+dishColumns+`
		 FROM favorites f
		 JOIN dishes d ON d.id = f.dish_id
		 WHERE f.account_id = ?
		 ORDER BY f.created_at, f.id`,
		accountID)
}
