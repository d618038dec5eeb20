// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/models"
)

// testDBSemaphore serializes DuckDB tests. DuckDB CGO calls can hang under
// heavy parallel load, so at most one test database is open at a time.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("New() error = %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return res.db
	case <-time.After(60 * time.Second):
		t.Fatal("timed out creating test database")
		return nil
	}
}

// mustAccount creates an account or fails the test.
func mustAccount(t *testing.T, db *DB, login string, roleID int64) *models.Account {
	t.Helper()
	acc, err := db.CreateAccount(context.Background(), login, "hash-"+login, roleID)
	if err != nil {
		t.Fatalf("CreateAccount(%q) error = %v", login, err)
	}
	return acc
}

// mustDish creates a dish or fails the test.
func mustDish(t *testing.T, db *DB, ownerID int64, name string, ing models.Ingredients) *models.Dish {
	t.Helper()
	d, err := db.CreateDish(context.Background(), ownerID, models.DishInput{Name: name, Ingredients: ing})
	if err != nil {
		t.Fatalf("CreateDish(%q) error = %v", name, err)
	}
	return d
}

func TestNew_SeedsRoles(t *testing.T) {
	db := setupTestDB(t)

	roles, err := db.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles() error = %v", err)
	}
	if len(roles) != len(models.DefaultRoles) {
		t.Fatalf("ListRoles() returned %d roles, want %d", len(roles), len(models.DefaultRoles))
	}
	for i, want := range models.DefaultRoles {
		if roles[i] != want {
			t.Errorf("roles[%d] = %+v, want %+v", i, roles[i], want)
		}
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.initialize(); err != nil {
		t.Fatalf("second initialize() error = %v", err)
	}
	roles, err := db.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles() error = %v", err)
	}
	if len(roles) != 3 {
		t.Errorf("ListRoles() returned %d roles after re-init, want 3", len(roles))
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn() returned nil")
	}
}

func TestEnsureContext(t *testing.T) {
	db := &DB{}

	t.Run("adds deadline when missing", func(t *testing.T) {
		ctx, cancel := db.ensureContext(context.Background())
		defer cancel()
		if _, ok := ctx.Deadline(); !ok {
			t.Error("ensureContext() returned context without deadline")
		}
	})

	t.Run("keeps existing deadline", func(t *testing.T) {
		parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
		defer parentCancel()
		ctx, cancel := db.ensureContext(parent)
		defer cancel()
		want, _ := parent.Deadline()
		got, _ := ctx.Deadline()
		if !got.Equal(want) {
			t.Errorf("deadline = %v, want %v", got, want)
		}
	})
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset, max    int
		wantLimit, wantOffset int
	}{
		{"defaults to max", 0, 0, 100, 100, 0},
		{"within range", 20, 40, 100, 20, 40},
		{"caps limit", 500, 0, 100, 100, 0},
		{"negative offset", 10, -5, 100, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, o := clampPage(tt.limit, tt.offset, tt.max)
			if l != tt.wantLimit || o != tt.wantOffset {
				t.Errorf("clampPage() = (%d, %d), want (%d, %d)", l, o, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Constraint Error: Duplicate key \"login: bob\" violates unique constraint"), true},
		{errors.New("UNIQUE constraint failed"), true},
		{errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		if got := isUniqueConstraintError(tt.err); got != tt.want {
			t.Errorf("isUniqueConstraintError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
