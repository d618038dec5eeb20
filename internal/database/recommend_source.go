// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"errors"

	"github.com/tomtom215/mealshare/internal/models"
	"github.com/tomtom215/mealshare/internal/recommend"
)

// RecommendSource adapts DB to recommend.DataProvider.
type RecommendSource struct {
	db *DB
}

var _ recommend.DataProvider = (*RecommendSource)(nil)

// RecommendSource returns a recommend.DataProvider backed by this database.
func (db *DB) RecommendSource() *RecommendSource {
	return &RecommendSource{db: db}
}

// GetDish returns nil without an error when the dish does not exist.
func (s *RecommendSource) GetDish(ctx context.Context, id int64) (*models.Dish, error) {
	d, err := s.db.GetDish(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return d, err
}

// ListCandidates returns every dish except excludeID.
func (s *RecommendSource) ListCandidates(ctx context.Context, excludeID int64) ([]models.Dish, error) {
	return s.db.ListDishesExcept(ctx, excludeID)
}
