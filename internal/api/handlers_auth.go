// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/models"
)

// checkResponse is the body of GET /check.
type checkResponse struct {
	IsAuthenticated bool               `json:"isAuthenticated"`
	User            models.AccountInfo `json:"user"`
}

// greetingResponse is the body of the role greeting endpoints.
type greetingResponse struct {
	Message string             `json:"message"`
	User    models.AccountInfo `json:"user"`
}

// greetings maps each role to the message of its greeting endpoint.
var greetings = map[string]string{
	models.RoleAdmin:     "Admin access granted",
	models.RolePartner:   "Partner access granted",
	models.RoleVolunteer: "Volunteer access granted",
}

// RegisterVolunteer handles POST /register_volunteer.
func (h *Handler) RegisterVolunteer(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleIDVolunteer)
}

// RegisterPartner handles POST /register_partner.
func (h *Handler) RegisterPartner(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleIDPartner)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, roleID int64) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.auth.Register(r.Context(), req.Login, req.Password, roleID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, auth.ErrLoginExists), errors.Is(err, auth.ErrMissingCredentials):
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, auth.ErrPasswordTooShort):
		writeError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
	default:
		writeInternalError(w, r, ErrCodeInternalError, err)
	}
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Login, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
	case errors.Is(err, auth.ErrRateLimited):
		writeError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, err.Error())
	case errors.Is(err, auth.ErrMissingCredentials):
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		writeInternalError(w, r, ErrCodeInternalError, err)
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (*CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, auth.ErrMissingCredentials.Error())
		return nil, false
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(w, r, apiErr)
		return nil, false
	}
	return &req, true
}

// AuthTest handles GET /auth_test.
func (h *Handler) AuthTest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"text": "User is authenticated"})
}

// Check handles GET /check.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{IsAuthenticated: true, User: principal.Info()})
}

// Logout handles POST /logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	if err := h.auth.Logout(r.Context(), principal.SessionID); err != nil {
		writeInternalError(w, r, ErrCodeInternalError, err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("account_id", principal.AccountID).Msg("Logged out")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// DeleteUser handles DELETE /user/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid user id")
		return
	}

	if err := h.auth.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		writeInternalError(w, r, ErrCodeDatabaseError, err)
		return
	}
	// The account's dishes went with it.
	h.invalidateRecommendations()

	logging.Ctx(r.Context()).Info().Int64("deleted_account_id", id).Msg("Account deleted")
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// Greeting returns the handler of a role greeting endpoint. Access control
// is applied by the router.
func (h *Handler) Greeting(role string) http.HandlerFunc {
	message := greetings[role]
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
			return
		}
		writeJSON(w, http.StatusOK, greetingResponse{Message: message, User: principal.Info()})
	}
}
