// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/mealshare/internal/logging"
)

type contextKey string

// PrincipalContextKey is the request context key holding the *Principal.
const PrincipalContextKey contextKey = "principal"

// TokenHeader is the header carrying a bare token.
const TokenHeader = "token"

// ErrorWriter writes an error response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, code, message string)

// Middleware authenticates requests against a Service.
type Middleware struct {
	service  *Service
	writeErr ErrorWriter
}

// NewMiddleware creates authentication middleware. A nil writeErr falls back
// to http.Error.
func NewMiddleware(service *Service, writeErr ErrorWriter) *Middleware {
	if writeErr == nil {
		writeErr = func(w http.ResponseWriter, _ *http.Request, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{service: service, writeErr: writeErr}
}

// RequireAuth rejects requests without a live token with 401.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			m.writeErr(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		principal, err := m.service.Authenticate(r.Context(), token)
		if err != nil {
			message := "invalid token"
			switch {
			case errors.Is(err, ErrSessionNotFound):
				message = "session not found"
			case errors.Is(err, ErrSessionExpired):
				message = "session expired"
			case !errors.Is(err, ErrInvalidToken):
				logging.Ctx(r.Context()).Error().Err(err).Msg("Session lookup failed")
				m.writeErr(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "authentication failed")
				return
			}
			m.writeErr(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message)
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractToken returns the token from the "token" header or from an
// "Authorization: Bearer" header, or "" when neither is present.
func ExtractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(PrincipalContextKey).(*Principal)
	return p, ok && p != nil
}

// ContextWithPrincipal returns a copy of ctx carrying p.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, p)
}
