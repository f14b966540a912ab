// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for workspace-tui.
//
// Configuration sources, in order of precedence:
//   - WORKSPACE_API_BASE_URL environment variable
//   - ~/.workspace-tui/config.toml
//   - Built-in defaults
package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvBaseURL overrides the backend base address when set.
const EnvBaseURL = "WORKSPACE_API_BASE_URL"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete workspace-tui configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	UI      UIConfig      `toml:"ui"`
}

// BackendConfig contains the remote backend settings.
type BackendConfig struct {
	// BaseURL is the backend base address.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ShowTimestamps toggles per-message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps"`
	// CompactSidebar collapses project descriptions in the sidebar.
	CompactSidebar bool `toml:"compact_sidebar"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:     "http://localhost:8000",
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns the expected config file location
// (~/.workspace-tui/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".workspace-tui", "config.toml")
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variable overrides.
func (c *Config) applyEnv() {
	if base := strings.TrimSpace(os.Getenv(EnvBaseURL)); base != "" {
		c.Backend.BaseURL = base
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("config: backend.base_url must be an absolute URL")
	}
	if c.Backend.TimeoutSecs <= 0 {
		return errors.New("config: backend.timeout_secs must be positive")
	}
	return nil
}
