// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package api provides the HTTP surface of Mealshare on a chi router.

# Routes

Public:

	GET  /health/live          liveness probe
	GET  /health/ready         readiness probe (pings DuckDB, 503 on failure)
	GET  /metrics              Prometheus exposition
	POST /register_volunteer   {login, password} -> {id, login, role, token}
	POST /register_partner     {login, password} -> {id, login, role, token}
	POST /login                {login, password} -> {id, login, role, token}

Authenticated (token header or Authorization: Bearer):

	GET    /auth_test                {text}
	GET    /check                    {isAuthenticated, user}
	POST   /logout                   {message}
	DELETE /user/{id}                admin only
	GET    /admin | /partner | /volunteer   role greeting {message, user}
	GET    /dishes?limit=&offset=    dish list, X-Total-Count header
	GET    /dishes/{id}
	POST   /dishes                   partner or admin
	PUT    /dishes/{id}              owner or admin
	DELETE /dishes/{id}              owner or admin
	GET    /favorites
	POST   /favorites/{dishID}       201 created, 200 already present
	DELETE /favorites/{dishID}       204
	GET    /recommendations/{id}     bare array of up to top_k dishes

# Responses

Successful responses are bare JSON. Errors use one envelope:

	{"success":false,"error":{"code":"NOT_FOUND","message":"dish not found","request_id":"..."},"meta":{...}}

Role checks go through internal/authz. Ownership of a dish is checked in
the handler because it depends on the row, not the role.
*/
package api
