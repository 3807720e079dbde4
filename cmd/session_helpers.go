// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"vidadeus/cli/internal/api"
	"vidadeus/cli/internal/config"
	"vidadeus/cli/internal/errors"
	"vidadeus/cli/internal/httperrors"
	"vidadeus/cli/internal/keychain"
	"vidadeus/cli/internal/session"
)

// newSession wires the HTTP client, keychain-backed token store and session
// manager the way every command consumes them. The manager registers itself
// as the client's forced-logout handler, so an unrecoverable 401 anywhere
// clears the stored credentials.
func newSession() (*session.Manager, *api.Client, error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, nil, err
	}

	km, err := keychain.GetManager()
	if err != nil {
		return nil, nil, errors.Wrap(errors.StorageUnavailable, "secure storage is not available on this system", err)
	}

	store := km.TokenStore()
	client := api.New(cfg.APIBaseURL, store)
	return session.NewManager(client, store, km), client, nil
}

// requireAuth bootstraps the session from storage and reports whether the
// user is logged in, printing guidance when they are not. Commands treat a
// false result as a handled condition, not an error.
func requireAuth(ctx context.Context) (*session.Manager, *api.Client, bool, error) {
	mgr, client, err := newSession()
	if err != nil {
		return nil, nil, false, err
	}

	mgr.InitFromStorage(ctx)
	if !mgr.IsAuthenticated() {
		fmt.Println("🔒 You're not logged in yet!")
		fmt.Println("   Run 'vida login' to get started.")
		return mgr, client, false, nil
	}
	return mgr, client, true, nil
}

// presentAPIError maps a terminal 401 on an established session to a
// session-expired error; the forced-logout handler has already cleared the
// stored credentials by the time this runs. Everything else goes through the
// shared network error presentation.
func presentAPIError(mgr *session.Manager, client *api.Client, err error) error {
	if api.IsUnauthorized(err) && !mgr.IsAuthenticated() {
		fmt.Println("🔒 Your session has expired.")
		fmt.Println("   Run 'vida login' to sign in again.")
		return errors.New(errors.SessionExpired, "session expired")
	}
	return httperrors.FormatNetworkError(err, client.BaseURL())
}
