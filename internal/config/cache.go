// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import "sync"

var (
	// Global singleton cache for the loaded configuration.
	// Lives only in process memory and is cleared when the CLI exits.
	globalCache     *Config
	globalCacheLock sync.RWMutex
)

// Get returns the process-wide configuration, loading it on first use.
// Subsequent calls within the same process return the cached value.
func Get() (Config, error) {
	globalCacheLock.RLock()
	cached := globalCache
	globalCacheLock.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	c, err := Load()
	if err != nil {
		return c, err
	}

	globalCacheLock.Lock()
	globalCache = &c
	globalCacheLock.Unlock()
	return c, nil
}

// ClearCache removes the cached configuration (primarily for testing).
func ClearCache() {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache = nil
}
