// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vidadeus/cli/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBackend is a minimal stand-in for the auth and profile endpoints.
type testBackend struct {
	mux *http.ServeMux
	srv *httptest.Server
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{mux: http.NewServeMux()}
	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *testBackend) handle(path string, status int, body any) {
	b.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

func newTestManager(t *testing.T, backend *testBackend, access, refresh string) (*Manager, *api.MemoryStore) {
	t.Helper()
	store := api.NewMemoryStore()
	if access != "" || refresh != "" {
		require.NoError(t, store.SetPair(access, refresh))
	}
	client := api.New(backend.srv.URL, store)
	return NewManager(client, store, nil), store
}

// memState is an in-memory StateStore standing in for the keychain slot.
type memState struct {
	mu   sync.Mutex
	data []byte
}

func (s *memState) SaveAuthState(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *memState) LoadAuthState() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, errors.New("no stored state")
	}
	return append([]byte(nil), s.data...), nil
}

func (s *memState) ClearAuthState() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

func (s *memState) snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

func TestInitFromStorageWithStoredPair(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/users/me", http.StatusOK, api.UserProfile{ID: "u1", Name: "Ana", Email: "ana@example.com"})

	mgr, _ := newTestManager(t, backend, "access-1", "refresh-1")
	mgr.InitFromStorage(context.Background())

	assert.True(t, mgr.IsInitialized())
	assert.True(t, mgr.IsAuthenticated())

	// Profile arrives in the background.
	require.Eventually(t, func() bool {
		return mgr.User() != nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "ana@example.com", mgr.User().Email)
}

func TestInitFromStorageWithoutTokens(t *testing.T) {
	backend := newTestBackend(t)

	mgr, _ := newTestManager(t, backend, "", "")
	mgr.InitFromStorage(context.Background())

	assert.True(t, mgr.IsInitialized())
	assert.False(t, mgr.IsAuthenticated())
	assert.Nil(t, mgr.User())
}

func TestInitFromStorageSurvivesProfileFailure(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/users/me", http.StatusInternalServerError, nil)

	mgr, _ := newTestManager(t, backend, "access-1", "refresh-1")
	mgr.InitFromStorage(context.Background())

	assert.True(t, mgr.IsAuthenticated())

	// Give the background fetch time to fail; the session must stand.
	time.Sleep(100 * time.Millisecond)
	assert.True(t, mgr.IsAuthenticated())
	assert.Nil(t, mgr.User())
}

func TestLoginEstablishesSession(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/auth/login", http.StatusOK, api.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"})
	backend.handle("/users/me", http.StatusOK, api.UserProfile{ID: "u1", Email: "ana@example.com"})

	mgr, store := newTestManager(t, backend, "", "")
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret"))

	assert.True(t, mgr.IsAuthenticated())
	assert.True(t, mgr.IsInitialized())
	require.NotNil(t, mgr.User())
	assert.Equal(t, "ana@example.com", mgr.User().Email)

	access, refresh := store.Pair()
	assert.Equal(t, "access-1", access)
	assert.Equal(t, "refresh-1", refresh)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/auth/login", http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})

	mgr, store := newTestManager(t, backend, "", "")
	err := mgr.Login(context.Background(), "ana@example.com", "wrong")

	require.True(t, api.IsUnauthorized(err))
	assert.False(t, mgr.IsAuthenticated())
	assert.Nil(t, mgr.User())

	access, refresh := store.Pair()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestLoginSucceedsWhenProfileFetchFails(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/auth/login", http.StatusOK, api.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"})
	backend.handle("/users/me", http.StatusInternalServerError, nil)

	mgr, _ := newTestManager(t, backend, "", "")
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret"))

	assert.True(t, mgr.IsAuthenticated())
	assert.Nil(t, mgr.User())
}

func TestSignupEstablishesSession(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/auth/signup", http.StatusOK, api.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"})
	backend.handle("/users/me", http.StatusOK, api.UserProfile{ID: "u1", Name: "Ana"})

	mgr, _ := newTestManager(t, backend, "", "")
	require.NoError(t, mgr.Signup(context.Background(), "Ana", "ana@example.com", "secret"))

	assert.True(t, mgr.IsAuthenticated())
	require.NotNil(t, mgr.User())
	assert.Equal(t, "Ana", mgr.User().Name)
}

func TestLogoutClearsLocallyEvenWhenBackendFails(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/users/me", http.StatusOK, api.UserProfile{ID: "u1"})
	backend.handle("/auth/logout", http.StatusInternalServerError, nil)

	mgr, store := newTestManager(t, backend, "access-1", "refresh-1")
	mgr.InitFromStorage(context.Background())
	require.True(t, mgr.IsAuthenticated())
	// Let the startup profile fetch settle before logging out.
	require.Eventually(t, func() bool { return mgr.User() != nil }, 2*time.Second, 10*time.Millisecond)

	mgr.Logout(context.Background())

	assert.False(t, mgr.IsAuthenticated())
	assert.Nil(t, mgr.User())
	// The latch stays set for the life of the process.
	assert.True(t, mgr.IsInitialized())

	access, refresh := store.Pair()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestForcedLogoutOnUnrecoverable401(t *testing.T) {
	backend := newTestBackend(t)
	// The profile endpoint still works so the startup fetch can't interfere;
	// everything else rejects the stale credentials, refresh included.
	backend.handle("/users/me", http.StatusOK, api.UserProfile{ID: "u1"})
	backend.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	store := api.NewMemoryStore()
	require.NoError(t, store.SetPair("access-stale", "refresh-stale"))
	client := api.New(backend.srv.URL, store)
	mgr := NewManager(client, store, nil)
	mgr.InitFromStorage(context.Background())
	require.True(t, mgr.IsAuthenticated())

	_, err := client.Feed(context.Background())
	require.True(t, api.IsUnauthorized(err))

	// The expired signal cleared the session and the stored pair.
	assert.False(t, mgr.IsAuthenticated())
	assert.True(t, mgr.IsInitialized())
	access, refresh := store.Pair()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestInitFromStorageRestoresProfileSnapshot(t *testing.T) {
	backend := newTestBackend(t)
	// The backend is down for profile fetches; only the snapshot can serve.
	backend.handle("/users/me", http.StatusInternalServerError, nil)

	state := &memState{}
	seed, err := json.Marshal(api.UserProfile{ID: "u1", Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NoError(t, state.SaveAuthState(seed))

	store := api.NewMemoryStore()
	require.NoError(t, store.SetPair("access-1", "refresh-1"))
	client := api.New(backend.srv.URL, store)
	mgr := NewManager(client, store, state)
	mgr.InitFromStorage(context.Background())

	// The cached profile is available immediately, before (and despite)
	// the failing background fetch.
	require.NotNil(t, mgr.User())
	assert.Equal(t, "ana@example.com", mgr.User().Email)
	assert.True(t, mgr.IsAuthenticated())
}

func TestLoginPersistsProfileSnapshot(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/auth/login", http.StatusOK, api.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"})
	backend.handle("/users/me", http.StatusOK, api.UserProfile{ID: "u1", Name: "Ana", Email: "ana@example.com"})

	state := &memState{}
	store := api.NewMemoryStore()
	client := api.New(backend.srv.URL, store)
	mgr := NewManager(client, store, state)

	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret"))

	var saved api.UserProfile
	require.NoError(t, json.Unmarshal(state.snapshot(), &saved))
	assert.Equal(t, "ana@example.com", saved.Email)
}

func TestClearAuthDropsProfileSnapshot(t *testing.T) {
	backend := newTestBackend(t)
	backend.handle("/auth/login", http.StatusOK, api.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"})
	backend.handle("/users/me", http.StatusOK, api.UserProfile{ID: "u1", Email: "ana@example.com"})

	state := &memState{}
	store := api.NewMemoryStore()
	client := api.New(backend.srv.URL, store)
	mgr := NewManager(client, store, state)

	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret"))
	require.NotEmpty(t, state.snapshot())

	mgr.ClearAuth()

	assert.Empty(t, state.snapshot())
	assert.Nil(t, mgr.User())
	assert.False(t, mgr.IsAuthenticated())
}

func TestSetUserDoesNotTouchAuthentication(t *testing.T) {
	backend := newTestBackend(t)

	mgr, _ := newTestManager(t, backend, "", "")
	mgr.SetUser(&api.UserProfile{ID: "u1", Name: "Ana"})

	assert.False(t, mgr.IsAuthenticated())
	require.NotNil(t, mgr.User())
	assert.Equal(t, "Ana", mgr.User().Name)
}
