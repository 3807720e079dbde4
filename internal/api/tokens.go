// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import "sync"

// TokenStore is the durable home of the access/refresh credential pair.
// Implementations must treat the pair as a unit: SetPair writes both tokens
// and Clear removes both, never one without the other.
//
// The OS keychain implementation lives in internal/keychain; MemoryStore
// backs tests and ephemeral sessions.
type TokenStore interface {
	// Pair returns the stored tokens. Empty strings mean "not stored".
	Pair() (access, refresh string)
	// SetPair persists both tokens together.
	SetPair(access, refresh string) error
	// Clear removes both tokens together.
	Clear() error
}

// MemoryStore is an in-memory TokenStore.
type MemoryStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryStore returns an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Pair returns the stored tokens.
func (s *MemoryStore) Pair() (access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh
}

// SetPair stores both tokens.
func (s *MemoryStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

// Clear removes both tokens.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
