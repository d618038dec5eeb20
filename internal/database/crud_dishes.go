// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/mealshare/internal/models"
)

const dishColumns = `d.id, d.owner_id, d.name, d.description, d.cooking_time, d.ingredients, d.created_at, d.updated_at`

// maxListLimit caps a single page of dishes.
const maxListLimit = 1000

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDish(s rowScanner) (models.Dish, error) {
	var (
		d           models.Dish
		description sql.NullString
		cookingTime sql.NullString
	)
	err := s.Scan(
		&d.ID, &d.OwnerID, &d.Name, &description, &cookingTime, &d.Ingredients,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return d, err
	}
	d.Description = description.String
	d.CookingTime = cookingTime.String
	return d, nil
}

// nullString maps "" to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateDish inserts a dish owned by ownerID.
func (db *DB) CreateDish(ctx context.Context, ownerID int64, in models.DishInput) (*models.Dish, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	now := time.Now().UTC()
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO dishes (owner_id, name, description, cooking_time, ingredients, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		ownerID, in.Name, nullString(in.Description), nullString(in.CookingTime), in.Ingredients, now, now,
	).Scan(&id)
	recordQuery("insert", "dishes", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	return &models.Dish{
		ID:          id,
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		CookingTime: in.CookingTime,
		Ingredients: in.Ingredients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetDish returns the dish with the given ID.
func (db *DB) GetDish(ctx context.Context, id int64) (*models.Dish, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	d, err := scanDish(db.conn.QueryRowContext(ctx,
		`SELECT `+dishColumns+` FROM dishes d WHERE d.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		recordQuery("select", "dishes", start, nil)
		return nil, ErrNotFound
	}
	recordQuery("select", "dishes", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	return &d, nil
}

// ListDishes returns a page of dishes ordered by ID.
func (db *DB) ListDishes(ctx context.Context, limit, offset int) ([]models.Dish, error) {
	limit, offset = clampPage(limit, offset, maxListLimit)
	return db.queryDishes(ctx, "list",
		`SELECT `+dishColumns+` FROM dishes d ORDER BY d.id LIMIT ? OFFSET ?`,
		limit, offset)
}

// ListDishesExcept returns every dish other than excludeID, ordered by ID.
func (db *DB) ListDishesExcept(ctx context.Context, excludeID int64) ([]models.Dish, error) {
	return db.queryDishes(ctx, "candidates",
		`SELECT `+dishColumns+` FROM dishes d WHERE d.id <> ? ORDER BY d.id`,
		excludeID)
}

// CountDishes returns the number of dishes.
func (db *DB) CountDishes(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM dishes`).Scan(&n)
	recordQuery("count", "dishes", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}
	return n, nil
}

func (db *DB) queryDishes(ctx context.Context, operation, query string, args ...interface{}) ([]models.Dish, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		recordQuery(operation, "dishes", start, err)
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer closeQuietly(rows)

	dishes := make([]models.Dish, 0)
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			recordQuery(operation, "dishes", start, err)
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	err = rows.Err()
	recordQuery(operation, "dishes", start, err)
	if err != nil {
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}
	return dishes, nil
}

// UpdateDish replaces the writable fields of a dish and returns the result.
// Returns ErrNotFound if the dish does not exist.
func (db *DB) UpdateDish(ctx context.Context, id int64, in models.DishInput) (*models.Dish, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE dishes
		 SET name = ?, description = ?, cooking_time = ?, ingredients = ?, updated_at = ?
		 WHERE id = ?`,
		in.Name, nullString(in.Description), nullString(in.CookingTime), in.Ingredients, time.Now().UTC(), id,
	)
	recordQuery("update", "dishes", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return db.GetDish(ctx, id)
}

// DeleteDish removes a dish and its favorites in one transaction.
// Returns ErrNotFound if the dish does not exist.
func (db *DB) DeleteDish(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() {
		if errors.Is(err, ErrNotFound) {
			recordQuery("delete", "dishes", start, nil)
			return
		}
		recordQuery("delete", "dishes", start, err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	if _, err = tx.ExecContext(ctx, `DELETE FROM favorites WHERE dish_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete favorites of dish: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM dishes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
