// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ifsca-dit/intellichat-tui/internal/apiclient"
	"github.com/ifsca-dit/intellichat-tui/internal/storage"
)

// Error variables for session failures.
var (
	// ErrNoToken indicates no token is stored.
	ErrNoToken = errors.New("no stored token")

	// ErrTokenExpired indicates the stored token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrMalformedToken indicates the token payload could not be decoded.
	ErrMalformedToken = errors.New("malformed token")
)

// =============================================================================
// CLAIMS
// =============================================================================

// Claims is the decoded token payload the UI needs. The decode is
// deliberately unverified: signature verification is the backend's job, and
// these claims only gate UI state. They are never a security boundary -- any
// authenticated call is re-verified server side.
type Claims struct {
	UserID     string
	Department string
	ExpiresAt  time.Time
}

// decodeClaims extracts the payload of a compact three-segment token without
// verifying its signature.
func decodeClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	claims := &Claims{ExpiresAt: exp.Time}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	} else if sub, err := mapClaims.GetSubject(); err == nil {
		claims.UserID = sub
	}
	if v, ok := mapClaims["department"].(string); ok {
		claims.Department = v
	}
	return claims, nil
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the authentication token and the session state derived from
// it. It is the only writer of the persisted token slot.
//
// Expiry is evaluated when Restore or Login runs, not continuously: a
// long-lived session may keep reporting authenticated after real-world expiry
// until the next token-bearing call fails with 401. That matches the backend
// being the authority on token validity.
type Manager struct {
	mu sync.Mutex

	store *storage.PrefStore
	api   *apiclient.Client

	token         string
	claims        *Claims
	authenticated bool

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewManager creates a session manager over the given store and API client.
func NewManager(store *storage.PrefStore, api *apiclient.Client) *Manager {
	return &Manager{
		store: store,
		api:   api,
		now:   time.Now,
	}
}

// =============================================================================
// LIFECYCLE OPERATIONS
// =============================================================================

// Restore loads a previously stored token, if any. A missing, undecodable, or
// expired token degrades silently to "not authenticated" and clears the
// stored slot; no error reaches the caller.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.Get(storage.KeyToken)
	if err != nil || token == "" {
		m.resetLocked()
		return
	}

	claims, err := decodeClaims(token)
	if err != nil || !claims.ExpiresAt.After(m.now()) {
		m.store.Delete(storage.KeyToken)
		m.resetLocked()
		return
	}

	m.token = token
	m.claims = claims
	m.authenticated = true
}

// Login exchanges credentials for a token, persists it, and authenticates the
// session. On failure the session stays unauthenticated and the returned
// error carries a single human-readable message.
func (m *Manager) Login(ctx context.Context, userID, password string) error {
	result, err := m.api.Login(ctx, userID, password)
	if err != nil {
		return errors.New(apiclient.ErrorDetail(err))
	}

	claims, err := decodeClaims(result.AccessToken)
	if err != nil {
		// The backend issued a token this client cannot read. Treat it
		// like a failed login rather than storing an unusable credential.
		return fmt.Errorf("unreadable token issued: %w", err)
	}
	if claims.UserID == "" {
		claims.UserID = result.UserID
	}
	if claims.Department == "" {
		claims.Department = result.Department
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !claims.ExpiresAt.After(m.now()) {
		m.resetLocked()
		return ErrTokenExpired
	}

	// A persist failure is tolerated: the session still works for this
	// run, it just will not survive a restart.
	_ = m.store.Set(storage.KeyToken, result.AccessToken)

	m.token = result.AccessToken
	m.claims = claims
	m.authenticated = true
	return nil
}

// Logout clears the stored token and resets session state. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Delete(storage.KeyToken)
	m.resetLocked()
}

// resetLocked clears in-memory session state. Caller holds m.mu.
func (m *Manager) resetLocked() {
	m.token = ""
	m.claims = nil
	m.authenticated = false
}

// =============================================================================
// STATE ACCESS
// =============================================================================

// Authenticated reports whether a decodable, unexpired token is held.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// Token returns the bearer token, or empty when unauthenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// UserID returns the subject identifier from the decoded claims.
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		return ""
	}
	return m.claims.UserID
}

// Department returns the department claim, when present.
func (m *Manager) Department() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		return ""
	}
	return m.claims.Department
}

// ExpiresAt returns the token expiry, or the zero time when unauthenticated.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		return time.Time{}
	}
	return m.claims.ExpiresAt
}
