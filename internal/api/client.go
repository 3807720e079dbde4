// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api implements the authenticated HTTP client for the Vida com Deus
// backend and the typed endpoint groups that ride on it.
//
// Every call goes through a single wrapper that injects the bearer credential
// from the TokenStore and converts non-2xx responses into *APIError. When a
// request comes back 401, the client refreshes the session once and replays
// the original request with the rotated credential pair. Concurrent callers
// that hit 401 while a refresh is already in flight join that flight and
// retry with its result instead of racing their own refresh.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Client performs authenticated requests against the backend REST API.
type Client struct {
	// baseURL is the base URL for all requests, versioned path included.
	baseURL string
	// client is the underlying HTTP client with configured timeout.
	client *http.Client
	// store holds the credential pair; read on every request so a retried
	// call observes tokens rotated by the refresh flight.
	store TokenStore
	// refresh collapses concurrent 401 recoveries into one refresh request.
	refresh singleflight.Group
	// expired is invoked at most once per failed refresh flight, when the
	// session cannot be recovered. Registered before first use and never
	// replaced afterwards.
	expired func()
}

// New creates a client for the given base URL and token store.
// All requests share a 10-second timeout.
func New(baseURL string, store TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		store:   store,
	}
}

// BaseURL returns the API base URL the client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnSessionExpired registers the forced-logout handler. The session manager
// wires this to its ClearAuth at construction time; the handler lives for
// the rest of the process.
func (c *Client) OnSessionExpired(fn func()) {
	c.expired = fn
}

func (c *Client) signalExpired() {
	if c.expired != nil {
		c.expired()
	}
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

// post issues an authenticated POST with an optional JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

// patch issues an authenticated PATCH with a JSON body.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, false)
}

// del issues an authenticated DELETE.
func (c *Client) del(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, false)
}

// do performs one logical request. On 401 it drives the refresh flow and
// replays the request exactly once; a 401 on the replayed request falls
// through to ordinary error handling rather than looping.
func (c *Client) do(ctx context.Context, method, path string, body, out any, retried bool) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if access, _ := c.store.Pair(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Transport failure: no status available, deliberately not an APIError.
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !retried {
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		return c.do(ctx, method, path, body, out, true)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// refreshSession exchanges the stored refresh token for a new credential
// pair. Concurrent callers share a single flight: exactly one refresh
// request is issued and every waiter observes its outcome. When recovery is
// impossible the forced-logout handler fires once, inside the flight.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		_, refresh := c.store.Pair()
		if refresh == "" {
			c.signalExpired()
			return nil, &APIError{Status: http.StatusUnauthorized, Message: "session expired"}
		}

		pair, err := c.refreshRequest(ctx, refresh)
		if err != nil {
			c.signalExpired()
			return nil, &APIError{Status: http.StatusUnauthorized, Message: "session expired, please log in again"}
		}

		// Always rotate both tokens so the pair stays consistent.
		if err := c.store.SetPair(pair.AccessToken, pair.RefreshToken); err != nil {
			c.signalExpired()
			return nil, &APIError{Status: http.StatusUnauthorized, Message: "session expired, please log in again"}
		}
		return nil, nil
	})
	return err
}

// refreshRequest calls POST /auth/refresh without authentication.
// It bypasses do() so a failing refresh can never recurse into another one.
func (c *Client) refreshRequest(ctx context.Context, refreshToken string) (*TokenPair, error) {
	b, err := json.Marshal(RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, fmt.Errorf("refresh response missing tokens")
	}
	return &pair, nil
}
