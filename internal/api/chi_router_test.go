// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/mealshare/internal/config"
)

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/health/live", http.StatusOK, `"status":"ok"`},
		{"/health/ready", http.StatusOK, `"database":"connected"`},
		{"/metrics", http.StatusOK, "api_requests_total"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			// One request first so request metrics exist.
			s.do(http.MethodGet, "/health/live", "", nil)
			rec := s.do(http.MethodGet, tt.path, "", nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body does not contain %q", tt.wantBody)
			}
		})
	}
}

func TestHealthReady_DatabaseClosed(t *testing.T) {
	s := newTestServer(t)
	if err := s.db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	rec := s.do(http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if code := errorCode(t, rec); code != ErrCodeServiceUnavailable {
		t.Errorf("code = %q, want SERVICE_UNAVAILABLE", code)
	}
}

func TestErrorEnvelope(t *testing.T) {
	s := newTestServer(t)

	req := newRequest(http.MethodGet, "/no/such/route")
	req.Header.Set("X-Request-ID", "req-123")
	rec := serve(s.handler, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp APIResponse
	decodeBody(t, rec, &resp)
	if resp.Success {
		t.Error("success = true on error")
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeNotFound || resp.Error.RequestID != "req-123" {
		t.Errorf("error = %+v", resp.Error)
	}
	if resp.Meta == nil || resp.Meta.RequestID != "req-123" || resp.Meta.Timestamp.IsZero() {
		t.Errorf("meta = %+v", resp.Meta)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPatch, "/login", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRateLimit_AuthRoutes(t *testing.T) {
	// 10 requests per window globally leaves 1 for the credential routes.
	s := newTestServer(t, withRateLimit(10))

	first := s.do(http.MethodPost, "/login", "", CredentialsRequest{Login: "nobody", Password: testPassword})
	if first.Code != http.StatusUnauthorized {
		t.Fatalf("first status = %d, want 401", first.Code)
	}
	second := s.do(http.MethodPost, "/login", "", CredentialsRequest{Login: "nobody", Password: testPassword})
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if code := errorCode(t, second); code != ErrCodeTooManyRequests {
		t.Errorf("code = %q, want TOO_MANY_REQUESTS", code)
	}

	// Health is outside the limited groups.
	for i := 0; i < 20; i++ {
		if rec := s.do(http.MethodGet, "/health/live", "", nil); rec.Code != http.StatusOK {
			t.Fatalf("health request %d status = %d", i, rec.Code)
		}
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	cfg := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:       []string{"https://mealshare.example"},
		RateLimitReqs:     42,
		RateLimitDisabled: true,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.RateLimitRequests != 42 || !cfg.RateLimitDisabled {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.RateLimitWindow <= 0 {
		t.Error("default window not kept")
	}

	if def := ChiMiddlewareConfigFromSecurity(nil); def.RateLimitRequests != 100 {
		t.Errorf("nil security requests = %d, want 100", def.RateLimitRequests)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://mealshare.example"},
		CORSAllowedMethods: []string{"GET", "POST"},
		CORSAllowedHeaders: []string{"token"},
	}).CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := newRequest(http.MethodOptions, "/dishes")
	req.Header.Set("Origin", "https://mealshare.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := serve(h, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://mealshare.example" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
