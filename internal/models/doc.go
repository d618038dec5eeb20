// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package models defines data structures shared by the Mealshare packages.

Key Components:

  - Account: registered volunteer, partner or administrator
  - Dish: catalog entry with an ingredient map used by the recommender
  - Favorite: link between an account and a dish
  - Ingredients: ingredient name to quantity map stored as a JSON column

The types carry JSON tags matching the HTTP contract. Database scanning lives
in internal/database; models only knows how to serialize itself.
*/
package models
