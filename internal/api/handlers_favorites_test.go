// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/tomtom215/mealshare/internal/models"
)

func favoritePath(id int64) string {
	return "/favorites/" + strconv.FormatInt(id, 10)
}

func TestFavorites(t *testing.T) {
	s := newTestServer(t)
	partner := s.partner("cook")
	volunteer := s.volunteer("fan")
	soup := s.createDish(partner.Token, DishRequest{Name: "Soup"})
	salad := s.createDish(partner.Token, DishRequest{Name: "Salad"})

	steps := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"add soup", http.MethodPost, favoritePath(soup.ID), http.StatusCreated},
		{"add soup again", http.MethodPost, favoritePath(soup.ID), http.StatusOK},
		{"add salad", http.MethodPost, favoritePath(salad.ID), http.StatusCreated},
		{"add unknown dish", http.MethodPost, favoritePath(999999), http.StatusNotFound},
		{"add bad id", http.MethodPost, "/favorites/xyz", http.StatusBadRequest},
		{"remove salad", http.MethodDelete, favoritePath(salad.ID), http.StatusNoContent},
		{"remove salad again", http.MethodDelete, favoritePath(salad.ID), http.StatusNoContent},
	}
	for _, st := range steps {
		rec := s.do(st.method, st.path, volunteer.Token, nil)
		if rec.Code != st.wantStatus {
			t.Fatalf("%s: status = %d, want %d, body = %s", st.name, rec.Code, st.wantStatus, rec.Body.String())
		}
	}

	var favs []models.Dish
	decodeBody(t, s.do(http.MethodGet, "/favorites", volunteer.Token, nil), &favs)
	if len(favs) != 1 || favs[0].ID != soup.ID {
		t.Errorf("favorites = %+v, want only soup", favs)
	}

	// Favorites are per account.
	rec := s.do(http.MethodGet, "/favorites", partner.Token, nil)
	if body := rec.Body.String(); body != "[]" {
		t.Errorf("partner favorites = %q, want []", body)
	}

	// Deleting the dish removes it from favorites.
	if rec := s.do(http.MethodDelete, dishPath(soup.ID), partner.Token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete dish status = %d", rec.Code)
	}
	favs = nil
	decodeBody(t, s.do(http.MethodGet, "/favorites", volunteer.Token, nil), &favs)
	if len(favs) != 0 {
		t.Errorf("favorites after dish delete = %+v, want none", favs)
	}
}

func TestFavorites_RequireAuth(t *testing.T) {
	s := newTestServer(t)
	if rec := s.do(http.MethodGet, "/favorites", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
