// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package models

import "time"

// Role names as stored in the roles table.
// IDs are fixed so that registrations can reference them directly.
const (
	RoleAdmin     = "admin"
	RolePartner   = "partner"
	RoleVolunteer = "volunteer"

	RoleIDAdmin     int64 = 1
	RoleIDPartner   int64 = 2
	RoleIDVolunteer int64 = 3
)

// Role is a row of the roles table.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultRoles are seeded at startup.
var DefaultRoles = []Role{
	{ID: RoleIDAdmin, Name: RoleAdmin},
	{ID: RoleIDPartner, Name: RolePartner},
	{ID: RoleIDVolunteer, Name: RoleVolunteer},
}

// RoleName returns the role name for a role ID, or "" when unknown.
func RoleName(id int64) string {
	for _, r := range DefaultRoles {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range DefaultRoles {
		if r.Name == role {
			return true
		}
	}
	return false
}

// Account is a registered user. PasswordHash never leaves the server.
type Account struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	RoleID       int64     `json:"role_id"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountInfo is the public view of an account returned by /check and the
// role greeting endpoints.
type AccountInfo struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// Info returns the public view of the account.
func (a *Account) Info() AccountInfo {
	return AccountInfo{ID: a.ID, Login: a.Login, Role: a.Role}
}

// AuthResult is returned by register and login.
type AuthResult struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
	Token string `json:"token"`
}
