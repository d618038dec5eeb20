// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package authz provides role-based authorization using Casbin.
//
// # Model
//
// Subjects are role names (admin, partner, volunteer). Objects are resource
// kinds such as "dish" or "greeting/admin".
//
//	[matchers]
//	m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
//
// # Policy
//
// All three roles belong to the "member" group, which may read dishes,
// manage its own favorites and read recommendations. Partners and admins
// may write dishes. Only admins may delete users. Each greeting endpoint
// admits exactly one role.
//
// The model and policy are embedded; EnforcerConfig can point at files
// instead.
//
// # Usage
//
//	enf, err := authz.NewEnforcer(nil)
//	mw := authz.NewMiddleware(enf, writeError)
//	r.With(mw.Require(authz.ObjectDish, authz.ActionWrite)).Post("/dishes", h.CreateDish)
package authz
