// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the client-side authentication lifecycle: whether the
// user is logged in, the credential pair's transitions, and the cached user
// profile. It is the single writer of the token store outside the HTTP
// client's refresh rotation.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"vidadeus/cli/internal/api"
	"vidadeus/cli/internal/logging"
)

var verboseSession = os.Getenv("VIDADEUS_VERBOSE") == "1"

// StateStore persists a serialized snapshot of session state beyond the
// credential pair, so the cached profile survives restarts and stays
// available when the backend is unreachable. The keychain manager satisfies
// this with its auth-state slot.
type StateStore interface {
	SaveAuthState(data []byte) error
	LoadAuthState() ([]byte, error)
	ClearAuthState() error
}

// Manager is the single source of truth for session state. Construct one per
// process with NewManager; it registers itself as the client's forced-logout
// handler for the life of the process.
type Manager struct {
	client *api.Client
	store  api.TokenStore
	state  StateStore

	mu            sync.RWMutex
	authenticated bool
	initialized   bool
	user          *api.UserProfile
}

// NewManager creates a session manager bound to the given client and store.
// The client's session-expired signal is wired to ClearAuth here, once.
// state may be nil, in which case no profile snapshot is persisted.
func NewManager(client *api.Client, store api.TokenStore, state StateStore) *Manager {
	m := &Manager{client: client, store: store, state: state}
	client.OnSessionExpired(m.ClearAuth)
	return m
}

// InitFromStorage restores the session from the stored credential pair.
// With both tokens present the manager is authenticated immediately and the
// profile is fetched in the background; profile failure never reverts
// authentication. Without a full pair the manager is merely initialized.
// Call once at startup, before any auth-gated decision; repeated calls with
// unchanged storage are harmless.
func (m *Manager) InitFromStorage(ctx context.Context) {
	access, refresh := m.store.Pair()

	m.mu.Lock()
	m.initialized = true
	if access != "" && refresh != "" {
		m.authenticated = true
		// Restore the last known profile so it is available right away,
		// even offline; the background fetch refreshes it when it can.
		if m.user == nil {
			m.user = m.loadSnapshot()
		}
	}
	authenticated := m.authenticated
	m.mu.Unlock()

	if !authenticated {
		return
	}

	// Best-effort profile load; the session stands either way.
	go func() {
		profile, err := m.client.Me(ctx)
		if err != nil {
			if verboseSession {
				fmt.Printf("[DEBUG] session: background profile fetch failed: %s\n", logging.Mask(err.Error()))
			}
			return
		}
		m.SetUser(profile)
	}()
}

// Login authenticates with email/password, persists the issued credential
// pair and marks the session authenticated. A backend failure leaves state
// untouched and propagates to the caller. A profile-fetch failure after the
// tokens are issued is swallowed: the session is authenticated, user stays nil.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	pair, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.establish(ctx, pair)
}

// Signup registers a new account; persistence and state transitions are the
// same as Login.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	pair, err := m.client.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}
	return m.establish(ctx, pair)
}

// establish persists the pair and flips the session to authenticated,
// attaching the profile when it can be fetched.
func (m *Manager) establish(ctx context.Context, pair *api.TokenPair) error {
	if err := m.store.SetPair(pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		if verboseSession {
			fmt.Printf("[DEBUG] session: profile fetch after login failed: %s\n", logging.Mask(err.Error()))
		}
		user = nil
	}

	m.mu.Lock()
	m.authenticated = true
	m.initialized = true
	m.user = user
	m.mu.Unlock()
	m.saveSnapshot(user)
	return nil
}

// Logout ends the session. The backend is notified best-effort; local
// credentials and state are always cleared. Logout never fails.
func (m *Manager) Logout(ctx context.Context) {
	if _, err := m.client.Logout(ctx); err != nil {
		if verboseSession {
			fmt.Printf("[DEBUG] %s\n", logging.PresentError("session: remote logout", err))
		}
	}
	m.ClearAuth()
}

// ClearAuth drops the credential pair and resets the session without
// contacting the backend. It is the forced-logout handler registered with
// the HTTP client. The initialized latch is never reset.
func (m *Manager) ClearAuth() {
	_ = m.store.Clear()
	if m.state != nil {
		_ = m.state.ClearAuthState()
	}

	m.mu.Lock()
	m.authenticated = false
	m.user = nil
	m.mu.Unlock()
}

// SetUser replaces the cached profile without touching authentication state.
// The snapshot follows the cached profile.
func (m *Manager) SetUser(user *api.UserProfile) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	m.saveSnapshot(user)
}

// saveSnapshot persists the profile to the state store, best-effort.
func (m *Manager) saveSnapshot(user *api.UserProfile) {
	if m.state == nil || user == nil {
		return
	}
	b, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := m.state.SaveAuthState(b); err != nil && verboseSession {
		fmt.Printf("[DEBUG] session: snapshot save failed: %s\n", logging.Mask(err.Error()))
	}
}

// loadSnapshot reads the persisted profile, if any. Call with m.mu held.
func (m *Manager) loadSnapshot() *api.UserProfile {
	if m.state == nil {
		return nil
	}
	b, err := m.state.LoadAuthState()
	if err != nil || len(b) == 0 {
		return nil
	}
	var user api.UserProfile
	if err := json.Unmarshal(b, &user); err != nil {
		return nil
	}
	return &user
}

// IsAuthenticated reports whether a credential pair is currently believed valid.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// IsInitialized reports whether startup bootstrap has completed.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// User returns the cached profile, which may be nil even when authenticated.
func (m *Manager) User() *api.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}
