// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"time"

	"github.com/goccy/go-json"
)

// Ingredients maps an ingredient name to its quantity.
// A missing or non-positive quantity counts as 1 when scoring.
type Ingredients map[string]float64

// Value implements driver.Valuer so the map is stored as a JSON column.
func (in Ingredients) Value() (driver.Value, error) {
	if in == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string]float64(in))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSON or NULL columns.
func (in *Ingredients) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*in = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case map[string]interface{}:
		// DuckDB may hand back decoded JSON
		out := make(Ingredients, len(v))
		for name, q := range v {
			f, ok := q.(float64)
			if !ok {
				return fmt.Errorf("ingredient %q has non-numeric quantity %v", name, q)
			}
			out[name] = f
		}
		*in = out
		return nil
	default:
		return fmt.Errorf("unsupported ingredients column type %T", src)
	}

	if len(data) == 0 || string(data) == "null" {
		*in = nil
		return nil
	}
	out := make(Ingredients)
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal ingredients: %w", err)
	}
	*in = out
	return nil
}

// cookingTimePattern matches an HH:MM:SS duration.
var cookingTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)

// IsValidCookingTime reports whether s is an HH:MM:SS value.
func IsValidCookingTime(s string) bool {
	return cookingTimePattern.MatchString(s)
}

// Dish is a catalog entry owned by an account.
type Dish struct {
	ID          int64       `json:"id"`
	OwnerID     int64       `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	CookingTime string      `json:"cooking_time,omitempty"`
	Ingredients Ingredients `json:"ingredients,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DishInput carries the writable fields of a dish.
type DishInput struct {
	Name        string
	Description string
	CookingTime string
	Ingredients Ingredients
}
