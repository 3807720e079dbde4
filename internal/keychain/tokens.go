// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

// Tokens adapts the keychain manager to the api.TokenStore contract, so the
// HTTP client and session manager can read and rotate the credential pair
// without knowing about the keyring.
type Tokens struct {
	m *Manager
}

// TokenStore returns a credential-pair view over this manager.
func (m *Manager) TokenStore() *Tokens {
	return &Tokens{m: m}
}

// Pair returns the stored access and refresh tokens. A missing or unreadable
// slot yields an empty string for that token rather than an error: callers
// treat an absent pair as "not logged in".
func (t *Tokens) Pair() (access, refresh string) {
	access, _ = t.m.LoadAccessToken()
	refresh, _ = t.m.LoadRefreshToken()
	return access, refresh
}

// SetPair persists both tokens together.
func (t *Tokens) SetPair(access, refresh string) error {
	return t.m.SaveAuthTokens(access, refresh)
}

// Clear removes both tokens together.
func (t *Tokens) Clear() error {
	return t.m.ClearAuth()
}
