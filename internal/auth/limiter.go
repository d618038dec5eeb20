// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per login name.
type LoginLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter allows attemptsPerMinute attempts per login, refilled
// evenly across the minute. A non-positive value disables throttling.
func NewLoginLimiter(attemptsPerMinute int) *LoginLimiter {
	if attemptsPerMinute <= 0 {
		return &LoginLimiter{rate: rate.Inf}
	}
	return &LoginLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(attemptsPerMinute)),
		burst:    attemptsPerMinute,
		idleTTL:  time.Hour,
	}
}

// Allow reports whether another attempt for login may proceed now.
func (l *LoginLimiter) Allow(login string) bool {
	if l.rate == rate.Inf {
		return true
	}

	l.mu.Lock()
	entry, ok := l.limiters[login]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[login] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// Reset forgets the attempts for login, e.g. after a successful login.
func (l *LoginLimiter) Reset(login string) {
	if l.rate == rate.Inf {
		return
	}
	l.mu.Lock()
	delete(l.limiters, login)
	l.mu.Unlock()
}

// Cleanup drops limiters idle for longer than an hour and returns how many
// were dropped.
func (l *LoginLimiter) Cleanup() int {
	if l.rate == rate.Inf {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := time.Now().Add(-l.idleTTL)
	removed := 0
	for login, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, login)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked logins.
func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
