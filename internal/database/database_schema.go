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

// schemaContext returns a context for schema operations at startup.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables runs every schema statement. All statements are idempotent.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// schemaQueries returns the table creation SQL statements.
func schemaQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS accounts_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS dishes_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS favorites_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS roles (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);`,

		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGINT PRIMARY KEY DEFAULT nextval('accounts_id_seq'),
			login TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,

		// cooking_time is an HH:MM:SS string; ingredients is a JSON object
		// of name to quantity.
		`CREATE TABLE IF NOT EXISTS dishes (
			id BIGINT PRIMARY KEY DEFAULT nextval('dishes_id_seq'),
			owner_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			cooking_time TEXT,
			ingredients TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS favorites (
			id BIGINT PRIMARY KEY DEFAULT nextval('favorites_id_seq'),
			account_id BIGINT NOT NULL,
			dish_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (account_id, dish_id)
		);`,

		`CREATE INDEX IF NOT EXISTS idx_dishes_owner ON dishes(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_dish ON favorites(dish_id);`,
	}
}

// seedRoles inserts the fixed roles when they are missing.
func (db *DB) seedRoles() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, role := range models.DefaultRoles {
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO roles (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			role.ID, role.Name,
		); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// ListRoles returns the roles ordered by ID.
func (db *DB) ListRoles(ctx context.Context) ([]models.Role, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		recordQuery("select", "roles", start, err)
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer closeQuietly(rows)

	var roles []models.Role
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	err = rows.Err()
	recordQuery("select", "roles", start, err)
	if err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}
	return roles, nil
}
