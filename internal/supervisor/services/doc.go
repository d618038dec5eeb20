// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package services adapts server components to suture.Service.
//
// Every service returns ctx.Err() once its context is canceled and
// implements fmt.Stringer so supervisor events name it.
package services
