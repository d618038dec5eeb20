// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"time"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/models"
)

// Recommender produces ranked recommendations for a dish.
type Recommender interface {
	Recommend(ctx context.Context, dishID int64) ([]models.Dish, error)
	Invalidate()
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_auth.go: registration, login, session and greeting endpoints
//   - handlers_dishes.go: dish catalog CRUD
//   - handlers_favorites.go: per-account favorites
//   - handlers_recommend.go: GET /recommendations/{id}
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	db          *database.DB
	auth        *auth.Service
	recommender Recommender
	config      *config.Config
	startTime   time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *database.DB, authService *auth.Service, recommender Recommender, cfg *config.Config) *Handler {
	return &Handler{
		db:          db,
		auth:        authService,
		recommender: recommender,
		config:      cfg,
		startTime:   time.Now(),
	}
}

// invalidateRecommendations drops cached rankings after a dish write.
func (h *Handler) invalidateRecommendations() {
	if h.recommender != nil {
		h.recommender.Invalidate()
	}
}

func (h *Handler) pageSizes() (defaultSize, maxSize int) {
	defaultSize, maxSize = 50, 1000
	if h.config != nil {
		if h.config.API.DefaultPageSize > 0 {
			defaultSize = h.config.API.DefaultPageSize
		}
		if h.config.API.MaxPageSize > 0 {
			maxSize = h.config.API.MaxPageSize
		}
	}
	return defaultSize, maxSize
}
