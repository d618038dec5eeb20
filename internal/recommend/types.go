// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package recommend

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/tomtom215/mealshare/internal/models"
)

// Sentinel errors returned by Recommender.Recommend.
var (
	// ErrNotFound means the target dish does not exist.
	ErrNotFound = errors.New("dish not found")

	// ErrInvalidInput means the target dish has no ingredients to compare.
	ErrInvalidInput = errors.New("dish has no ingredients")
)

// Ingredients maps ingredient names to quantities.
type Ingredients = models.Ingredients

// Candidate is a dish considered for ranking against the target.
type Candidate struct {
	ID          int64
	Ingredients Ingredients
}

// ScoredCandidate is a candidate ID with its similarity score.
type ScoredCandidate struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// DataProvider supplies dishes to the Recommender.
type DataProvider interface {
	// GetDish returns the dish with the given ID, or nil with a nil error
	// when no such dish exists.
	GetDish(ctx context.Context, id int64) (*models.Dish, error)

	// ListCandidates returns every dish except excludeID.
	ListCandidates(ctx context.Context, excludeID int64) ([]models.Dish, error)
}

// Config controls ranking and caching.
type Config struct {
	// TopK is the number of dishes returned per request.
	TopK int

	// CacheTTL is how long a result is cached. Zero disables caching.
	CacheTTL time.Duration

	// ParallelThreshold is the candidate count above which scoring runs
	// on multiple goroutines. Zero or negative disables parallel scoring.
	ParallelThreshold int

	// Workers caps the goroutines used by parallel scoring.
	Workers int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		TopK:              5,
		CacheTTL:          5 * time.Minute,
		ParallelThreshold: 2000,
		Workers:           runtime.GOMAXPROCS(0),
	}
}
