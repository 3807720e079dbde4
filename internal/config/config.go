// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; secrets go to OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"vidadeus/cli/internal/xdg"
)

// DefaultAPIBaseURL is the production backend, versioned path included.
const DefaultAPIBaseURL = "https://api.vidacomdeus.app/v1"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIBaseURL string `json:"api_base_url"`
	LogLevel   string `json:"log_level"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
// The VIDADEUS_API_BASE_URL environment variable overrides the file value.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.APIBaseURL = DefaultAPIBaseURL
			c.LogLevel = "info"
			return applyEnv(c), nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return applyEnv(c), nil
}

// applyEnv overlays environment overrides on top of file/default values.
func applyEnv(c Config) Config {
	if v := strings.TrimSpace(os.Getenv("VIDADEUS_API_BASE_URL")); v != "" {
		c.APIBaseURL = strings.TrimRight(v, "/")
	}
	return c
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
