// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/models"
)

// TotalCountHeader carries the unpaginated dish count on GET /dishes.
const TotalCountHeader = "X-Total-Count"

// ListDishes handles GET /dishes?limit=&offset=.
func (h *Handler) ListDishes(w http.ResponseWriter, r *http.Request) {
	defaultSize, maxSize := h.pageSizes()

	limit, err := getIntParam(r, "limit", defaultSize)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	offset, err := getIntParam(r, "offset", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if limit > maxSize {
		limit = maxSize
	}

	req := ListDishesRequest{Limit: limit, Offset: offset}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(w, r, apiErr)
		return
	}

	dishes, err := h.db.ListDishes(r.Context(), req.Limit, req.Offset)
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	total, err := h.db.CountDishes(r.Context())
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}

	w.Header().Set(TotalCountHeader, strconv.Itoa(total))
	writeJSON(w, http.StatusOK, dishes)
}

// GetDish handles GET /dishes/{id}.
func (h *Handler) GetDish(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid dish id")
		return
	}

	dish, err := h.db.GetDish(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "dish not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// CreateDish handles POST /dishes. The caller becomes the owner.
func (h *Handler) CreateDish(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	req, ok := decodeDish(w, r)
	if !ok {
		return
	}

	dish, err := h.db.CreateDish(r.Context(), principal.AccountID, req.Input())
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	h.invalidateRecommendations()

	logging.Ctx(r.Context()).Info().
		Int64("dish_id", dish.ID).
		Int64("owner_id", dish.OwnerID).
		Msg("Dish created")
	writeJSON(w, http.StatusCreated, dish)
}

// UpdateDish handles PUT /dishes/{id}. Only the owner or an admin may
// update a dish.
func (h *Handler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeDishWrite(w, r)
	if !ok {
		return
	}
	req, ok := decodeDish(w, r)
	if !ok {
		return
	}

	dish, err := h.db.UpdateDish(r.Context(), id, req.Input())
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "dish not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	h.invalidateRecommendations()

	logging.Ctx(r.Context()).Info().Int64("dish_id", id).Msg("Dish updated")
	writeJSON(w, http.StatusOK, dish)
}

// DeleteDish handles DELETE /dishes/{id}. Favorites of the dish go with it.
func (h *Handler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeDishWrite(w, r)
	if !ok {
		return
	}

	err := h.db.DeleteDish(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "dish not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	h.invalidateRecommendations()

	logging.Ctx(r.Context()).Info().Int64("dish_id", id).Msg("Dish deleted")
	w.WriteHeader(http.StatusNoContent)
}

// authorizeDishWrite resolves the dish ID and checks that the caller owns
// the dish or is an admin. It writes the error response when it fails.
func (h *Handler) authorizeDishWrite(w http.ResponseWriter, r *http.Request) (int64, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return 0, false
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid dish id")
		return 0, false
	}

	dish, err := h.db.GetDish(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "dish not found")
		return 0, false
	}
	if err != nil {
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return 0, false
	}

	if dish.OwnerID != principal.AccountID && principal.Role != models.RoleAdmin {
		writeError(w, r, http.StatusForbidden, ErrCodeForbidden, "only the owner or an admin may modify this dish")
		return 0, false
	}
	return id, true
}

func decodeDish(w http.ResponseWriter, r *http.Request) (*DishRequest, bool) {
	var req DishRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return nil, false
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(w, r, apiErr)
		return nil, false
	}
	return &req, true
}
