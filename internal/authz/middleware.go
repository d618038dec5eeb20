// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package authz

import (
	"net/http"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
)

// Middleware checks the authenticated principal's role against the enforcer.
// It must run after auth.Middleware.RequireAuth.
type Middleware struct {
	enforcer *Enforcer
	writeErr auth.ErrorWriter
}

// NewMiddleware creates authorization middleware. A nil writeErr falls back
// to http.Error.
func NewMiddleware(enforcer *Enforcer, writeErr auth.ErrorWriter) *Middleware {
	if writeErr == nil {
		writeErr = func(w http.ResponseWriter, _ *http.Request, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{enforcer: enforcer, writeErr: writeErr}
}

// Require returns middleware that allows the request only when the caller's
// role may perform action on object.
func (m *Middleware) Require(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				m.writeErr(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}

			allowed, err := m.enforcer.Enforce(principal.Role, object, action)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
				m.writeErr(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization failed")
				return
			}
			metrics.RecordAuthzDecision(object, allowed)

			if !allowed {
				logging.Ctx(r.Context()).Debug().
					Int64("account_id", principal.AccountID).
					Str("role", principal.Role).
					Str("object", object).
					Str("action", action).
					Msg("Access denied")
				m.writeErr(w, r, http.StatusForbidden, "FORBIDDEN", "access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
