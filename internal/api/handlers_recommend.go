// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/mealshare/internal/recommend"
)

// recommendTimeout bounds one recommendation request.
const recommendTimeout = 10 * time.Second

// Recommendations handles GET /recommendations/{id}. The body is a bare
// array of up to top_k dishes ranked by similarity.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid dish id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	dishes, err := h.recommender.Recommend(ctx, id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dishes)
	case errors.Is(err, recommend.ErrNotFound):
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, recommend.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		writeInternalError(w, r, ErrCodeInternalError, err)
	}
}
