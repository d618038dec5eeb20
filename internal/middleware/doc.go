// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package middleware provides chi-compatible HTTP middleware for request
tracking, access logging and Prometheus instrumentation.

Key Components:

  - RequestID: honors or generates X-Request-ID and seeds the logging context
  - AccessLog: one structured zerolog line per request, warning on slow requests
  - PrometheusMetrics: request counters and latency histograms labelled by route pattern

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)

RequestID must run first so the other layers log with the request ID.
PrometheusMetrics labels by the chi route pattern ("/dishes/{id}") rather
than the raw path, which keeps label cardinality bounded.
*/
package middleware
