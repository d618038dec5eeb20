// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/mealshare/internal/api"
	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/authz"
	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/recommend"
	"github.com/tomtom215/mealshare/internal/supervisor"
	"github.com/tomtom215/mealshare/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the components and blocks until a shutdown signal arrives.
//
//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("session_store", cfg.Security.SessionStore).
		Msg("Starting Mealshare")
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS for production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	storeFactory, err := auth.NewSessionStoreFactory(auth.SessionStoreType(cfg.Security.SessionStore), cfg.Security.SessionStorePath)
	if err != nil {
		return fmt.Errorf("initialize session store: %w", err)
	}
	defer func() {
		if err := storeFactory.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	sessions := storeFactory.CreateStore()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize JWT manager: %w", err)
	}
	authService := auth.NewService(db, sessions, jwtManager, auth.ServiceConfig{
		BcryptCost:             cfg.Security.BcryptCost,
		LoginAttemptsPerMinute: cfg.Security.LoginAttemptsPerMinute,
	})

	if err := bootstrap(ctx, cfg, db, authService); err != nil {
		return err
	}

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		ModelPath:  cfg.Security.AuthzModelPath,
		PolicyPath: cfg.Security.AuthzPolicyPath,
	})
	if err != nil {
		return fmt.Errorf("initialize authorization: %w", err)
	}

	recommender, err := recommend.NewRecommender(db.RecommendSource(), recommend.Config{
		TopK:              cfg.Recommend.TopK,
		CacheTTL:          cfg.Recommend.CacheTTL,
		ParallelThreshold: cfg.Recommend.ParallelThreshold,
		Workers:           cfg.Recommend.Workers,
	}, logging.Logger())
	if err != nil {
		return fmt.Errorf("initialize recommender: %w", err)
	}
	defer recommender.Close()

	handler := api.NewHandler(db, authService, recommender, cfg)
	router := api.NewRouter(handler, enforcer, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewSessionCleanupService(
		sessions, authService.Limiter(), cfg.Security.SessionCleanupInterval, logging.Logger(),
	))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", serveErr)
	}
	return nil
}

// bootstrap creates the configured admin account and, when enabled, the
// demo dishes owned by it.
func bootstrap(ctx context.Context, cfg *config.Config, db *database.DB, authService *auth.Service) error {
	if cfg.Security.AdminLogin == "" {
		if cfg.Database.SeedDemoData {
			logging.Warn().Msg("SEED_DEMO_DATA needs ADMIN_LOGIN; skipping demo data")
		}
		return nil
	}

	admin, err := authService.EnsureAdmin(ctx, cfg.Security.AdminLogin, cfg.Security.AdminPassword)
	if err != nil {
		return fmt.Errorf("ensure admin account: %w", err)
	}
	logging.Info().Str("login", admin.Login).Int64("id", admin.ID).Msg("Admin account ready")

	if !cfg.Database.SeedDemoData {
		return nil
	}
	n, err := db.SeedDemoData(ctx, admin.ID)
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	logging.Info().Int("dishes", n).Msg("Demo data seeded")
	return nil
}
