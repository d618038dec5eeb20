// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package main is the entry point of the Mealshare server.

Mealshare keeps a catalog of dishes published by partners, lets volunteers
collect favorites, and recommends dishes with similar ingredients.

# Startup

 1. Configuration: koanf defaults, optional config.yaml, environment
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB schema for accounts, dishes and favorites
 4. Sessions: in-memory or Badger session store
 5. Authentication: bcrypt passwords and HS256 JWTs bound to sessions
 6. Bootstrap: optional admin account and demo dishes
 7. Authorization: casbin role policy
 8. Recommender: ingredient similarity with a TTL result cache
 9. HTTP: chi router with request ID, access log, metrics and rate limits
 10. Supervision: suture tree with the HTTP server and session cleanup

# Configuration

	HTTP_PORT=3333
	JWT_SECRET=<32+ chars>          # required
	DUCKDB_PATH=/data/mealshare.duckdb
	SESSION_STORE=memory            # or badger with SESSION_STORE_PATH
	ADMIN_LOGIN=admin               # optional, with ADMIN_PASSWORD
	ADMIN_PASSWORD=<password>
	SEED_DEMO_DATA=false            # needs ADMIN_LOGIN
	LOG_LEVEL=info
	LOG_FORMAT=json

# Shutdown

SIGINT or SIGTERM cancels the supervisor tree. The HTTP server drains
in-flight requests for SHUTDOWN_TIMEOUT, then the session store and the
database are closed.
*/
package main
