// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import "github.com/tomtom215/mealshare/internal/models"

// CredentialsRequest is the body of /register_* and /login.
type CredentialsRequest struct {
	Login    string `json:"login" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// DishRequest is the body of POST /dishes and PUT /dishes/{id}.
type DishRequest struct {
	Name        string             `json:"name" validate:"required,max=200,nowhitespace_edges"`
	Description string             `json:"description" validate:"max=2000"`
	CookingTime string             `json:"cooking_time" validate:"omitempty,cooking_time"`
	Ingredients map[string]float64 `json:"ingredients" validate:"omitempty,max=100,dive,keys,required,max=100,endkeys,gt=0"`
}

// Input converts the request to the store's input type.
func (d *DishRequest) Input() models.DishInput {
	return models.DishInput{
		Name:        d.Name,
		Description: d.Description,
		CookingTime: d.CookingTime,
		Ingredients: models.Ingredients(d.Ingredients),
	}
}

// ListDishesRequest holds the validated pagination of GET /dishes.
type ListDishesRequest struct {
	Limit  int `validate:"min=1,max=1000"`
	Offset int `validate:"min=0"`
}
