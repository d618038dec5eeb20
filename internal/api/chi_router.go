// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/authz"
	"github.com/tomtom215/mealshare/internal/middleware"
	"github.com/tomtom215/mealshare/internal/models"
)

// Router wires handlers to routes with their middleware.
type Router struct {
	handler       *Handler
	authn         *auth.Middleware
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. Authentication uses the handler's auth
// service; authorization uses enforcer.
func NewRouter(handler *Handler, enforcer *authz.Enforcer, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		authn:         auth.NewMiddleware(handler.auth, writeError),
		authz:         authz.NewMiddleware(enforcer, writeError),
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	require := router.authz.Require

	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(middleware.DefaultSlowThreshold))
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	// ========================
	// Health and Metrics
	// ========================
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ========================
	// Credential Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Post("/register_volunteer", h.RegisterVolunteer)
		r.Post("/register_partner", h.RegisterPartner)
		r.Post("/login", h.Login)
	})

	// ========================
	// Authenticated Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(router.authn.RequireAuth)

		r.With(require(authz.ObjectSession, authz.ActionRead)).Get("/auth_test", h.AuthTest)
		r.With(require(authz.ObjectSession, authz.ActionRead)).Get("/check", h.Check)
		r.With(require(authz.ObjectSession, authz.ActionRead)).Post("/logout", h.Logout)

		r.With(require(authz.ObjectUser, authz.ActionDelete)).Delete("/user/{id}", h.DeleteUser)

		for _, role := range []string{models.RoleAdmin, models.RolePartner, models.RoleVolunteer} {
			r.With(require(authz.ObjectGreeting+role, authz.ActionRead)).Get("/"+role, h.Greeting(role))
		}

		r.With(require(authz.ObjectDish, authz.ActionRead)).Get("/dishes", h.ListDishes)
		r.With(require(authz.ObjectDish, authz.ActionRead)).Get("/dishes/{id}", h.GetDish)
		r.With(require(authz.ObjectDish, authz.ActionWrite)).Post("/dishes", h.CreateDish)
		r.With(require(authz.ObjectDish, authz.ActionWrite)).Put("/dishes/{id}", h.UpdateDish)
		r.With(require(authz.ObjectDish, authz.ActionWrite)).Delete("/dishes/{id}", h.DeleteDish)

		r.With(require(authz.ObjectFavorite, authz.ActionRead)).Get("/favorites", h.ListFavorites)
		r.With(require(authz.ObjectFavorite, authz.ActionWrite)).Post("/favorites/{dishID}", h.AddFavorite)
		r.With(require(authz.ObjectFavorite, authz.ActionWrite)).Delete("/favorites/{dishID}", h.RemoveFavorite)

		r.With(require(authz.ObjectRecommendation, authz.ActionRead)).Get("/recommendations/{id}", h.Recommendations)
	})

	return r
}
