// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package recommend

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mealshare/internal/cache"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/models"
)

const cachePrefix = "recommend"

// Recommender loads dishes from a DataProvider and ranks them by
// ingredient similarity to a target dish.
type Recommender struct {
	provider DataProvider
	cfg      Config
	logger   zerolog.Logger
	cache    *cache.Cache[[]models.Dish]

	// generation is bumped by Invalidate. A ranking computed across a bump
	// may include deleted dishes and is not cached.
	generation atomic.Uint64
}

// NewRecommender creates a Recommender. Zero config fields take their
// DefaultConfig values, except CacheTTL where zero disables caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(provider DataProvider, cfg Config, logger zerolog.Logger) (*Recommender, error) {
	defaults := DefaultConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = defaults.TopK
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}

	r := &Recommender{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.CacheTTL > 0 {
		c, err := cache.New[[]models.Dish](cachePrefix, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		r.cache = c
	}
	return r, nil
}

// Recommend returns up to TopK dishes most similar to dishID, best first.
// It returns ErrNotFound when the dish does not exist and ErrInvalidInput
// when the dish has no ingredients.
func (r *Recommender) Recommend(ctx context.Context, dishID int64) ([]models.Dish, error) {
	start := time.Now()
	logger := r.logger.With().Int64("dish_id", dishID).Logger()

	key := cache.Key(cachePrefix, dishID)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			metrics.RecordRecommendation("cached", 0, time.Since(start))
			logger.Debug().Msg("cache hit")
			return slices.Clone(cached), nil
		}
	}

	gen := r.generation.Load()
	target, err := r.provider.GetDish(ctx, dishID)
	if err != nil {
		metrics.RecordRecommendation("error", 0, time.Since(start))
		logger.Error().Err(err).Msg("failed to load target dish")
		return nil, fmt.Errorf("failed to load dish %d: %w", dishID, err)
	}
	if target == nil {
		metrics.RecordRecommendation("not_found", 0, time.Since(start))
		return nil, ErrNotFound
	}
	if len(target.Ingredients) == 0 {
		metrics.RecordRecommendation("invalid", 0, time.Since(start))
		return nil, ErrInvalidInput
	}

	dishes, err := r.provider.ListCandidates(ctx, dishID)
	if err != nil {
		metrics.RecordRecommendation("error", 0, time.Since(start))
		logger.Error().Err(err).Msg("failed to load candidate dishes")
		return nil, fmt.Errorf("failed to load candidates for dish %d: %w", dishID, err)
	}

	byID := make(map[int64]models.Dish, len(dishes))
	candidates := make([]Candidate, 0, len(dishes))
	for i := range dishes {
		if dishes[i].ID == dishID {
			continue
		}
		byID[dishes[i].ID] = dishes[i]
		candidates = append(candidates, Candidate{ID: dishes[i].ID, Ingredients: dishes[i].Ingredients})
	}

	ranked, err := r.rank(ctx, target.Ingredients, candidates)
	if err != nil {
		metrics.RecordRecommendation("error", len(candidates), time.Since(start))
		return nil, fmt.Errorf("failed to rank candidates for dish %d: %w", dishID, err)
	}

	result := make([]models.Dish, 0, len(ranked))
	for _, sc := range ranked {
		result = append(result, byID[sc.ID])
	}

	if r.cache != nil && r.generation.Load() == gen {
		r.cache.Set(key, slices.Clone(result))
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation("ok", len(candidates), elapsed)
	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(result)).
		Dur("duration", elapsed).
		Msg("recommendations ranked")

	return result, nil
}

func (r *Recommender) rank(ctx context.Context, target Ingredients, candidates []Candidate) ([]ScoredCandidate, error) {
	if r.cfg.ParallelThreshold > 0 && len(candidates) > r.cfg.ParallelThreshold {
		return RankParallel(ctx, target, candidates, r.cfg.TopK, r.cfg.Workers)
	}
	return Rank(target, candidates, r.cfg.TopK), nil
}

// Invalidate drops every cached result. Call it after any dish write,
// since a change to one dish can reorder the results of all others.
func (r *Recommender) Invalidate() {
	r.generation.Add(1)
	if r.cache != nil {
		r.cache.Clear()
		r.logger.Debug().Msg("recommendation cache cleared")
	}
}

// Close releases the cache.
func (r *Recommender) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}
