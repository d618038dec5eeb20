// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package models

import (
	"testing"
)

func TestRoleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   int64
		want string
	}{
		{RoleIDAdmin, RoleAdmin},
		{RoleIDPartner, RolePartner},
		{RoleIDVolunteer, RoleVolunteer},
		{42, ""},
	}

	for _, tt := range tests {
		if got := RoleName(tt.id); got != tt.want {
			t.Errorf("RoleName(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	t.Parallel()

	if !IsValidRole(RolePartner) {
		t.Error("IsValidRole(partner) = false, want true")
	}
	if IsValidRole("viewer") {
		t.Error("IsValidRole(viewer) = true, want false")
	}
}

func TestIsValidCookingTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"00:30:00", true},
		{"23:59:59", true},
		{"24:00:00", false},
		{"1:30:00", false},
		{"01:60:00", false},
		{"", false},
		{"01:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsValidCookingTime(tt.input); got != tt.want {
				t.Errorf("IsValidCookingTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIngredientsScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     interface{}
		want    Ingredients
		wantErr bool
	}{
		{name: "nil", src: nil, want: nil},
		{name: "json string", src: `{"flour":2,"egg":1}`, want: Ingredients{"flour": 2, "egg": 1}},
		{name: "json bytes", src: []byte(`{"salt":0.5}`), want: Ingredients{"salt": 0.5}},
		{name: "null literal", src: "null", want: nil},
		{name: "decoded map", src: map[string]interface{}{"milk": 1.5}, want: Ingredients{"milk": 1.5}},
		{name: "non numeric", src: map[string]interface{}{"milk": "lots"}, wantErr: true},
		{name: "bad json", src: "{", wantErr: true},
		{name: "unsupported type", src: 12, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got Ingredients
			err := got.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Scan() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Scan()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestIngredientsValue(t *testing.T) {
	t.Parallel()

	var empty Ingredients
	v, err := empty.Value()
	if err != nil || v != nil {
		t.Errorf("nil Value() = %v, %v, want nil, nil", v, err)
	}

	v, err = Ingredients{"egg": 2}.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != `{"egg":2}` {
		t.Errorf("Value() = %v, want {\"egg\":2}", v)
	}
}
