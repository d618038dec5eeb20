// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/models"
)

// demoDishes is a small catalog with overlapping ingredients so that
// recommendations are meaningful out of the box.
var demoDishes = []models.DishInput{
	{
		Name:        "Pancakes",
		Description: "Thin breakfast pancakes",
		CookingTime: "00:25:00",
		Ingredients: models.Ingredients{"flour": 200, "milk": 300, "egg": 2, "sugar": 20, "butter": 30},
	},
	{
		Name:        "Crepes Suzette",
		Description: "Crepes with orange butter sauce",
		CookingTime: "00:40:00",
		Ingredients: models.Ingredients{"flour": 125, "milk": 250, "egg": 2, "butter": 80, "orange": 2, "sugar": 60},
	},
	{
		Name:        "Omelette",
		CookingTime: "00:10:00",
		Ingredients: models.Ingredients{"egg": 3, "milk": 30, "butter": 10, "salt": 1},
	},
	{
		Name:        "Shortbread",
		Description: "Scottish butter biscuits",
		CookingTime: "00:45:00",
		Ingredients: models.Ingredients{"flour": 180, "butter": 120, "sugar": 60},
	},
	{
		Name:        "Tomato Soup",
		CookingTime: "00:35:00",
		Ingredients: models.Ingredients{"tomato": 800, "onion": 1, "garlic": 2, "olive oil": 30, "salt": 1},
	},
	{
		Name:        "Bruschetta",
		Description: "Toasted bread with tomato",
		CookingTime: "00:15:00",
		Ingredients: models.Ingredients{"bread": 4, "tomato": 300, "garlic": 1, "olive oil": 20, "basil": 5},
	},
	{
		Name:        "Shakshuka",
		CookingTime: "00:30:00",
		Ingredients: models.Ingredients{"egg": 4, "tomato": 400, "onion": 1, "garlic": 2, "pepper": 1},
	},
	{
		Name:        "Plain Rice",
		Description: "Served with anything",
		CookingTime: "00:20:00",
	},
}

// SeedDemoData inserts the demo catalog, owned by ownerID, into an empty
// dishes table. It returns the number of dishes inserted, which is zero
// when the table already has rows.
func (db *DB) SeedDemoData(ctx context.Context, ownerID int64) (int, error) {
	count, err := db.CountDishes(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logging.Debug().Int("dishes", count).Msg("Skipping demo data, catalog is not empty")
		return 0, nil
	}

	for i, in := range demoDishes {
		if _, err := db.CreateDish(ctx, ownerID, in); err != nil {
			return i, fmt.Errorf("failed to seed dish %q: %w", in.Name, err)
		}
	}

	logging.Info().Int("dishes", len(demoDishes)).Int64("owner_id", ownerID).Msg("Seeded demo catalog")
	return len(demoDishes), nil
}
