// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package supervisor runs the long-lived services of the Mealshare server
under a suture v4 supervisor tree.

# Layout

	mealshare
	├── data-layer
	│   └── session-cleanup
	└── api-layer
	    └── http-server

Each layer counts failures independently, so a crashing cleanup loop backs
off without touching the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewSessionCleanupService(store, authService.Limiter(), 5*time.Minute, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Supervisor events (start, failure, backoff) are logged through the
sutureslog hook, which writes to the zerolog logger via the slog adapter
in the logging package.
*/
package supervisor
