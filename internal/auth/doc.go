// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package auth implements account registration, login and token
// authentication for Mealshare.
//
// # Tokens and Sessions
//
// Login and registration return an HS256 JWT whose jti claim is a session
// ID. A request is authenticated only when the token validates and its
// session is still present in the SessionStore, so Logout takes effect
// immediately even though the JWT itself has not expired.
//
// Two session stores are available:
//   - MemorySessionStore: process-local map, lost on restart
//   - BadgerSessionStore: BadgerDB-backed, survives restarts, uses key TTLs
//
// # Passwords
//
// Passwords are hashed with bcrypt at the configured cost and must be at
// least MinPasswordLength characters.
//
// # Throttling
//
// LoginLimiter throttles login attempts per login name with a token bucket
// (golang.org/x/time/rate). A throttled attempt returns ErrRateLimited.
//
// # Middleware
//
// Middleware.RequireAuth reads the token from the "token" header or from
// "Authorization: Bearer <token>" and stores the Principal in the request
// context. Use PrincipalFromContext to read it back.
package auth
