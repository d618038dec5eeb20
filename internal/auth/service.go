// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/models"
)

var (
	// ErrInvalidCredentials is returned for an unknown login or a wrong password.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrMissingCredentials is returned when login or password is empty.
	ErrMissingCredentials = errors.New("login and password are required")

	// ErrLoginExists is returned when registering a taken login.
	ErrLoginExists = errors.New("login already exists")

	// ErrRateLimited is returned when a login has too many recent attempts.
	ErrRateLimited = errors.New("too many login attempts")

	// ErrInvalidToken is returned for a malformed, forged or expired token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAccountNotFound is returned when deleting an unknown account.
	ErrAccountNotFound = errors.New("user not found")
)

// AccountStore is the account persistence used by Service.
// *database.DB implements it.
type AccountStore interface {
	CreateAccount(ctx context.Context, login, passwordHash string, roleID int64) (*models.Account, error)
	GetAccountByLogin(ctx context.Context, login string) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// Principal is the authenticated caller of a request.
type Principal struct {
	AccountID int64
	Login     string
	Role      string
	SessionID string
}

// Info returns the public account view of the principal.
func (p *Principal) Info() models.AccountInfo {
	return models.AccountInfo{ID: p.AccountID, Login: p.Login, Role: p.Role}
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	BcryptCost             int
	LoginAttemptsPerMinute int
}

// Service implements registration, login, logout and token authentication.
type Service struct {
	accounts AccountStore
	sessions SessionStore
	jwt      *JWTManager
	limiter  *LoginLimiter
	cost     int
}

// NewService creates an authentication service.
func NewService(accounts AccountStore, sessions SessionStore, jwtManager *JWTManager, cfg ServiceConfig) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		jwt:      jwtManager,
		limiter:  NewLoginLimiter(cfg.LoginAttemptsPerMinute),
		cost:     cfg.BcryptCost,
	}
}

// Limiter returns the login attempt limiter.
func (s *Service) Limiter() *LoginLimiter {
	return s.limiter
}

// Sessions returns the session store.
func (s *Service) Sessions() SessionStore {
	return s.sessions
}

// Register creates an account with the given role and logs it in.
func (s *Service) Register(ctx context.Context, login, password string, roleID int64) (*models.AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		metrics.RecordAuthAttempt("register", false)
		return nil, ErrMissingCredentials
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		metrics.RecordAuthAttempt("register", false)
		return nil, err
	}

	acc, err := s.accounts.CreateAccount(ctx, login, hash, roleID)
	if err != nil {
		metrics.RecordAuthAttempt("register", false)
		if errors.Is(err, database.ErrDuplicateLogin) {
			return nil, ErrLoginExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	metrics.RecordAuthAttempt("register", true)
	logging.Ctx(ctx).Info().
		Int64("account_id", acc.ID).
		Str("login", acc.Login).
		Str("role", acc.Role).
		Msg("Account registered")

	return s.startSession(ctx, acc)
}

// Login verifies credentials and starts a session.
func (s *Service) Login(ctx context.Context, login, password string) (*models.AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		metrics.RecordAuthAttempt("login", false)
		return nil, ErrMissingCredentials
	}

	if !s.limiter.Allow(login) {
		metrics.RecordAuthAttempt("login", false)
		logging.Ctx(ctx).Warn().Str("login", login).Msg("Login attempt throttled")
		return nil, ErrRateLimited
	}

	acc, err := s.accounts.GetAccountByLogin(ctx, login)
	if errors.Is(err, database.ErrNotFound) {
		metrics.RecordAuthAttempt("login", false)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		metrics.RecordAuthAttempt("login", false)
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if !CheckPassword(acc.PasswordHash, password) {
		metrics.RecordAuthAttempt("login", false)
		logging.Ctx(ctx).Info().Str("login", login).Msg("Login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	s.limiter.Reset(login)
	metrics.RecordAuthAttempt("login", true)
	return s.startSession(ctx, acc)
}

func (s *Service) startSession(ctx context.Context, acc *models.Account) (*models.AuthResult, error) {
	session := NewSession(acc.ID, acc.Login, acc.Role, s.jwt.Timeout())
	token, err := s.jwt.GenerateToken(session)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	metrics.AuthActiveSessions.Inc()

	return &models.AuthResult{
		ID:    acc.ID,
		Login: acc.Login,
		Role:  acc.Role,
		Token: token,
	}, nil
}

// Authenticate resolves a token to its principal. The token must be a valid
// JWT and its session must still exist.
func (s *Service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Token validation failed")
		return nil, ErrInvalidToken
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session.AccountID != claims.AccountID {
		return nil, ErrInvalidToken
	}

	return &Principal{
		AccountID: session.AccountID,
		Login:     session.Login,
		Role:      session.Role,
		SessionID: session.ID,
	}, nil
}

// Logout ends a session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	metrics.AuthActiveSessions.Dec()
	return nil
}

// DeleteAccount ends every session of an account, then removes the account
// with its dishes and favorites.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	n, err := s.sessions.DeleteByAccountID(ctx, id)
	metrics.AuthActiveSessions.Sub(float64(n))
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	if err := s.accounts.DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// EnsureAdmin creates the administrator account when it does not exist
// and returns it.
func (s *Service) EnsureAdmin(ctx context.Context, login, password string) (*models.Account, error) {
	acc, err := s.accounts.GetAccountByLogin(ctx, login)
	if err == nil {
		if acc.RoleID != models.RoleIDAdmin {
			logging.Warn().Str("login", login).Str("role", acc.Role).Msg("Configured admin login exists with a non-admin role")
		}
		return acc, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up admin account: %w", err)
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}
	acc, err = s.accounts.CreateAccount(ctx, login, hash, models.RoleIDAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}
	logging.Info().Int64("account_id", acc.ID).Str("login", login).Msg("Admin account created")
	return acc, nil
}
