// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package metrics defines the Prometheus collectors exported at /metrics.

# Available Metrics

HTTP:
  - api_requests_total (method, endpoint, status_code)
  - api_request_duration_seconds (method, endpoint)
  - api_active_requests
  - api_rate_limit_hits_total (endpoint)

Database:
  - duckdb_query_duration_seconds (operation, table)
  - duckdb_query_errors_total (operation, table, error_type)

Cache:
  - cache_hits_total, cache_misses_total, cache_evictions_total (cache_type)

Recommendations:
  - recommend_duration_seconds
  - recommend_candidates
  - recommend_requests_total (outcome)

Authentication:
  - auth_attempts_total (action, result)
  - auth_active_sessions

Collectors register with the default registry through promauto, so importing
the package is enough to expose them.
*/
package metrics
