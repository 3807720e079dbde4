// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(access, refresh string) *MemoryStore {
	s := NewMemoryStore()
	_ = s.SetPair(access, refresh)
	return s
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClientInjectsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		writeJSON(t, w, http.StatusOK, UserProfile{ID: "u1", Email: "ana@example.com"})
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore("access-1", "refresh-1"))
	profile, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, TokenPair{AccessToken: "a", RefreshToken: "r"})
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemoryStore())
	_, err := c.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
}

func TestClientNoContentResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore("a", "r"))
	msg, err := c.Logout(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msg.Message)
}

func TestAPIErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"detail field", http.StatusBadRequest, `{"detail":"email already registered"}`, "email already registered"},
		{"message field", http.StatusForbidden, `{"message":"admin role required"}`, "admin role required"},
		{"plain text body", http.StatusBadGateway, "upstream unavailable", "upstream unavailable"},
		{"empty body", http.StatusInternalServerError, "", "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, newTestStore("a", "r"))
			_, err := c.Feed(context.Background())
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, newTestStore("a", "r"))
	_, err := c.Feed(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestRefreshRotatesPairAndRetriesOnce(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			var req RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "refresh-old", req.RefreshToken)
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, TokenPair{AccessToken: "access-new", RefreshToken: "refresh-new"})
		case "/posts/feed":
			if r.Header.Get("Authorization") != "Bearer access-new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(t, w, http.StatusOK, FeedResponse{})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	store := newTestStore("access-old", "refresh-old")
	c := New(srv.URL, store)

	_, err := c.Feed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))

	// Both tokens rotated together.
	access, refresh := store.Pair()
	assert.Equal(t, "access-new", access)
	assert.Equal(t, "refresh-new", refresh)
}

func TestFailedRefreshSignalsExpiredOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "refresh token revoked"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var expired int32
	c := New(srv.URL, newTestStore("access-old", "refresh-old"))
	c.OnSessionExpired(func() { atomic.AddInt32(&expired, 1) })

	_, err := c.Feed(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&expired))
}

func TestMissingRefreshTokenSkipsRefreshRequest(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var expired int32
	c := New(srv.URL, newTestStore("access-only", ""))
	c.OnSessionExpired(func() { atomic.AddInt32(&expired, 1) })

	_, err := c.Feed(context.Background())
	require.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&expired))
}

func TestSecond401DoesNotLoop(t *testing.T) {
	var feedCalls, refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
			writeJSON(t, w, http.StatusOK, TokenPair{AccessToken: "access-new", RefreshToken: "refresh-new"})
			return
		}
		atomic.AddInt32(&feedCalls, 1)
		// Still 401 after refresh: the client must give up, not refresh again.
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore("access-old", "refresh-old"))
	_, err := c.Feed(context.Background())
	require.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&feedCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestConcurrent401sShareOneRefreshFlight(t *testing.T) {
	const workers = 8

	var (
		refreshCalls int32
		arrived      int32
		release      = make(chan struct{})
		releaseOnce  sync.Once
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
			// Keep the flight open long enough for every waiter to join it.
			time.Sleep(100 * time.Millisecond)
			writeJSON(t, w, http.StatusOK, TokenPair{AccessToken: "access-new", RefreshToken: "refresh-new"})
			return
		}
		if r.Header.Get("Authorization") == "Bearer access-old" {
			// Hold every first attempt until all workers are in flight, so
			// their 401s land together and contend for the refresh.
			if atomic.AddInt32(&arrived, 1) == workers {
				releaseOnce.Do(func() { close(release) })
			}
			<-release
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, http.StatusOK, FeedResponse{})
	}))
	defer srv.Close()

	store := newTestStore("access-old", "refresh-old")
	c := New(srv.URL, store)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Feed(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestRefreshResponseMissingTokensFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			writeJSON(t, w, http.StatusOK, TokenPair{AccessToken: "access-new"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var expired int32
	store := newTestStore("access-old", "refresh-old")
	c := New(srv.URL, store)
	c.OnSessionExpired(func() { atomic.AddInt32(&expired, 1) })

	_, err := c.Feed(context.Background())
	require.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&expired))

	// The half-issued pair must not replace the stored one.
	access, refresh := store.Pair()
	assert.Equal(t, "access-old", access)
	assert.Equal(t, "refresh-old", refresh)
}

func TestUpdateSessionPatchesRecordedSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/therapist/patients/pat-1/sessions/ses-9", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		var req CreateSessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2026-08-20", req.Date)
		assert.Equal(t, "good", req.Mood)

		writeJSON(t, w, http.StatusOK, TherapySession{
			ID:        "ses-9",
			PatientID: "pat-1",
			Date:      req.Date,
			Summary:   req.Summary,
			Mood:      req.Mood,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore("access-1", "refresh-1"))
	updated, err := c.UpdateSession(context.Background(), "pat-1", "ses-9", CreateSessionRequest{
		Date:    "2026-08-20",
		Summary: "Revisited breathing exercises",
		Mood:    "good",
	})
	require.NoError(t, err)
	assert.Equal(t, "ses-9", updated.ID)
	assert.Equal(t, "Revisited breathing exercises", updated.Summary)
}

func TestHealthFallsBackToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL+"/v1", NewMemoryStore())
	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "unknown", h.Status)
	assert.Equal(t, "unknown", h.Version)
}
