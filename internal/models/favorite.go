// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package models

import "time"

// Favorite links an account to a dish it marked.
type Favorite struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	DishID    int64     `json:"dish_id"`
	CreatedAt time.Time `json:"created_at"`
}
