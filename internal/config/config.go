// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package config loads Mealshare configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("invalid configuration")
//	}
//
// Environment variables keep short, flat names (HTTP_PORT, JWT_SECRET,
// DUCKDB_PATH, ...) and are mapped onto the nested koanf paths by
// envTransformFunc. Unknown variables are ignored.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"` // 0 = use runtime.NumCPU()
	SeedDemoData bool   `koanf:"seed_demo_data"`
}

// APIConfig holds pagination settings for list endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and request limiting settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	SessionStore      string        `koanf:"session_store"` // memory or badger
	SessionStorePath  string        `koanf:"session_store_path"`

	// SessionCleanupInterval is how often expired sessions are purged.
	SessionCleanupInterval time.Duration `koanf:"session_cleanup_interval"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// LoginAttemptsPerMinute throttles login attempts per login name.
	LoginAttemptsPerMinute int `koanf:"login_attempts_per_minute"`
	BcryptCost             int `koanf:"bcrypt_cost"`

	// AdminLogin and AdminPassword seed an administrator account at startup
	// when both are set and the login does not exist yet.
	AdminLogin    string `koanf:"admin_login"`
	AdminPassword string `koanf:"admin_password"`

	// AuthzModelPath and AuthzPolicyPath override the embedded casbin model
	// and role policy. Empty or missing files fall back to the embedded ones.
	AuthzModelPath  string `koanf:"authz_model_path"`
	AuthzPolicyPath string `koanf:"authz_policy_path"`
}

// RecommendConfig holds recommendation settings.
type RecommendConfig struct {
	TopK              int           `koanf:"top_k"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	ParallelThreshold int           `koanf:"parallel_threshold"`
	Workers           int           `koanf:"workers"` // 0 = GOMAXPROCS
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
