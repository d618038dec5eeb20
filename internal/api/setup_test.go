// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/authz"
	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/models"
	"github.com/tomtom215/mealshare/internal/recommend"
)

const (
	testJWTSecret     = "test-secret-that-is-at-least-32-characters"
	testAdminLogin    = "admin"
	testAdminPassword = "admin-password"
	testPassword      = "password123"
)

// testDBSemaphore serializes DuckDB tests. DuckDB CGO calls can hang under
// heavy parallel load, so at most one test database is open at a time.
var testDBSemaphore = make(chan struct{}, 1)

// countingRecommender records Invalidate calls on top of a real recommender.
type countingRecommender struct {
	*recommend.Recommender
	invalidations atomic.Int32
}

func (c *countingRecommender) Invalidate() {
	c.invalidations.Add(1)
	c.Recommender.Invalidate()
}

type testServer struct {
	t           *testing.T
	handler     http.Handler
	db          *database.DB
	recommender *countingRecommender
}

type serverOption func(*config.Config)

func withRateLimit(requests int) serverOption {
	return func(cfg *config.Config) {
		cfg.Security.RateLimitDisabled = false
		cfg.Security.RateLimitReqs = requests
		cfg.Security.RateLimitWindow = time.Minute
	}
}

func withLoginAttempts(n int) serverOption {
	return func(cfg *config.Config) {
		cfg.Security.LoginAttemptsPerMinute = n
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2},
		API:      config.APIConfig{DefaultPageSize: 50, MaxPageSize: 1000},
		Security: config.SecurityConfig{
			JWTSecret:              testJWTSecret,
			SessionTimeout:         time.Hour,
			RateLimitDisabled:      true,
			LoginAttemptsPerMinute: 100,
			BcryptCost:             bcrypt.MinCost,
		},
		Recommend: config.RecommendConfig{TopK: 5, CacheTTL: time.Minute},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	authService := auth.NewService(db, auth.NewMemorySessionStore(), jwtManager, auth.ServiceConfig{
		BcryptCost:             cfg.Security.BcryptCost,
		LoginAttemptsPerMinute: cfg.Security.LoginAttemptsPerMinute,
	})
	if _, err := authService.EnsureAdmin(context.Background(), testAdminLogin, testAdminPassword); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	rec, err := recommend.NewRecommender(db.RecommendSource(), recommend.Config{
		TopK:     cfg.Recommend.TopK,
		CacheTTL: cfg.Recommend.CacheTTL,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}
	t.Cleanup(rec.Close)
	counting := &countingRecommender{Recommender: rec}

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	handler := NewHandler(db, authService, counting, cfg)
	router := NewRouter(handler, enforcer, ChiMiddlewareConfigFromSecurity(&cfg.Security))

	return &testServer{t: t, handler: router.SetupChi(), db: db, recommender: counting}
}

// do sends a request and returns the recorder. body is JSON-encoded unless nil.
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.10:40000"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its auth result.
func (s *testServer) register(path, login string) *models.AuthResult {
	s.t.Helper()
	rec := s.do(http.MethodPost, path, "", CredentialsRequest{Login: login, Password: testPassword})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("POST %s status = %d, body = %s", path, rec.Code, rec.Body.String())
	}
	var res models.AuthResult
	decodeBody(s.t, rec, &res)
	return &res
}

func (s *testServer) volunteer(login string) *models.AuthResult {
	return s.register("/register_volunteer", login)
}

func (s *testServer) partner(login string) *models.AuthResult {
	return s.register("/register_partner", login)
}

func (s *testServer) admin() *models.AuthResult {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/login", "", CredentialsRequest{Login: testAdminLogin, Password: testAdminPassword})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("admin login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res models.AuthResult
	decodeBody(s.t, rec, &res)
	return &res
}

// createDish posts a dish and returns it.
func (s *testServer) createDish(token string, req DishRequest) *models.Dish {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/dishes", token, req)
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("POST /dishes status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var d models.Dish
	decodeBody(s.t, rec, &d)
	return &d
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// errorCode returns the code of an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp APIResponse
	decodeBody(t, rec, &resp)
	if resp.Success || resp.Error == nil {
		t.Fatalf("body %q is not an error envelope", rec.Body.String())
	}
	return resp.Error.Code
}

func newRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.10:40000"
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
