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

const accountColumns = `a.id, a.login, a.password_hash, a.role_id, r.name, a.created_at`

// CreateAccount inserts a new account and returns it with its assigned ID.
// Returns ErrDuplicateLogin if the login is taken.
func (db *DB) CreateAccount(ctx context.Context, login, passwordHash string, roleID int64) (*models.Account, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	roleName := models.RoleName(roleID)
	if roleName == "" {
		return nil, fmt.Errorf("unknown role id %d", roleID)
	}

	now := time.Now().UTC()
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO accounts (login, password_hash, role_id, created_at)
		 VALUES (?, ?, ?, ?) RETURNING id`,
		login, passwordHash, roleID, now,
	).Scan(&id)
	recordQuery("insert", "accounts", start, err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateLogin
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &models.Account{
		ID:           id,
		Login:        login,
		PasswordHash: passwordHash,
		RoleID:       roleID,
		Role:         roleName,
		CreatedAt:    now,
	}, nil
}

// GetAccountByLogin returns the account with the given login.
func (db *DB) GetAccountByLogin(ctx context.Context, login string) (*models.Account, error) {
	return db.getAccount(ctx, `a.login = ?`, login)
}

// GetAccountByID returns the account with the given ID.
func (db *DB) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return db.getAccount(ctx, `a.id = ?`, id)
}

func (db *DB) getAccount(ctx context.Context, where string, arg interface{}) (*models.Account, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	query := `SELECT ` + accountColumns + `
		FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE ` + where

	var acc models.Account
	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&acc.ID, &acc.Login, &acc.PasswordHash, &acc.RoleID, &acc.Role, &acc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		recordQuery("select", "accounts", start, nil)
		return nil, ErrNotFound
	}
	recordQuery("select", "accounts", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// DeleteAccount removes an account together with its favorites, its dishes
// and every favorite pointing at those dishes, in one transaction.
// Returns ErrNotFound if the account does not exist.
func (db *DB) DeleteAccount(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() {
		if errors.Is(err, ErrNotFound) {
			recordQuery("delete", "accounts", start, nil)
			return
		}
		recordQuery("delete", "accounts", start, err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	var exists bool
	if err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = ?)`, id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if !exists {
		err = ErrNotFound
		return err
	}

	steps := []struct {
		name  string
		query string
	}{
		{"favorites of account", `DELETE FROM favorites WHERE account_id = ?`},
		{"favorites of owned dishes", `DELETE FROM favorites WHERE dish_id IN (SELECT id FROM dishes WHERE owner_id = ?)`},
		{"owned dishes", `DELETE FROM dishes WHERE owner_id = ?`},
		{"account", `DELETE FROM accounts WHERE id = ?`},
	}
	for _, step := range steps {
		if _, err = tx.ExecContext(ctx, step.query, id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
