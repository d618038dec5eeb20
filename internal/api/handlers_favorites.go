// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/database"
)

// ListFavorites handles GET /favorites.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	dishes, err := h.db.ListFavorites(r.Context(), principal.AccountID)
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

// AddFavorite handles POST /favorites/{dishID}. It answers 201 when the
// favorite was created and 200 when it already existed.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	dishID, err := idParam(r, "dishID")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid dish id")
		return
	}

	created, err := h.db.AddFavorite(r.Context(), principal.AccountID, dishID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "dish not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}

	if created {
		writeJSON(w, http.StatusCreated, messageResponse{Message: "Added to favorites"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Already in favorites"})
}

// RemoveFavorite handles DELETE /favorites/{dishID}. Removing a favorite
// that does not exist still answers 204.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	dishID, err := idParam(r, "dishID")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid dish id")
		return
	}

	if err := h.db.RemoveFavorite(r.Context(), principal.AccountID, dishID); err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
