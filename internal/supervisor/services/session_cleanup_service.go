// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mealshare/internal/metrics"
)

// DefaultCleanupInterval is used when no interval is configured.
const DefaultCleanupInterval = 5 * time.Minute

// SessionSweeper deletes sessions past their expiry and counts the rest.
// Satisfied by auth.SessionStore.
type SessionSweeper interface {
	CleanupExpired(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// IdleEntryRemover drops idle per-key state. Satisfied by *auth.LoginLimiter.
type IdleEntryRemover interface {
	Cleanup() int
}

// SessionCleanupService periodically removes expired sessions and idle
// login limiter entries, and resets the active session gauge to the
// store's count.
type SessionCleanupService struct {
	sessions SessionSweeper
	limiter  IdleEntryRemover
	interval time.Duration
	logger   zerolog.Logger
}

// NewSessionCleanupService creates the cleanup loop. limiter may be nil.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewSessionCleanupService(sessions SessionSweeper, limiter IdleEntryRemover, interval time.Duration, logger zerolog.Logger) *SessionCleanupService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &SessionCleanupService{
		sessions: sessions,
		limiter:  limiter,
		interval: interval,
		logger:   logger.With().Str("service", "session-cleanup").Logger(),
	}
}

// Serve implements suture.Service.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("session cleanup started")

	// Sessions persisted by a previous run are counted right away.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one cleanup pass. Store errors are logged and retried on
// the next tick.
func (s *SessionCleanupService) sweep(ctx context.Context) {
	removed, err := s.sessions.CleanupExpired(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session cleanup failed")
	} else if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired sessions removed")
	}

	if n, err := s.sessions.Count(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("session count failed")
	} else {
		metrics.AuthActiveSessions.Set(float64(n))
	}

	if s.limiter != nil {
		if n := s.limiter.Cleanup(); n > 0 {
			s.logger.Debug().Int("removed", n).Msg("idle login limiters removed")
		}
	}
}

// String names the service in supervisor events.
func (s *SessionCleanupService) String() string {
	return "session-cleanup"
}
