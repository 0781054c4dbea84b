// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for IntelliChat.
//
// Configuration file locations (in order of precedence):
//   - path passed to Load
//   - ~/.intellichat/config.toml
//   - Built-in defaults
//
// Environment variables override file values:
//   - INTELLICHAT_API_URL overrides api.base_url
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete IntelliChat TUI configuration.
type Config struct {
	// API configuration
	API APIConfig `toml:"api"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Export configuration
	Export ExportConfig `toml:"export"`
}

// APIConfig contains backend endpoint configuration.
type APIConfig struct {
	// BaseURL is the root of the IntelliChat backend API.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the HTTP request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
	// SlowResponseSecs is how long to wait before showing the
	// server-under-load advisory. Informational only; the request itself
	// is not aborted.
	SlowResponseSecs int `toml:"slow_response_secs"`
}

// UIConfig contains presentation configuration.
type UIConfig struct {
	// AppTitle is shown in the header.
	AppTitle string `toml:"app_title"`
	// SupportEmail is the contact shown in the help overlay.
	SupportEmail string `toml:"support_email"`
}

// ExportConfig contains transcript export configuration.
type ExportConfig struct {
	// OutputDir is where exported transcripts are written.
	// Default: current working directory.
	OutputDir string `toml:"output_dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          "http://localhost:8000",
			TimeoutSecs:      120,
			SlowResponseSecs: 60,
		},
		UI: UIConfig{
			AppTitle:     "IntelliChat",
			SupportEmail: "support@intellichat.local",
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(homeDir, ".intellichat", "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from path, falling back to defaults for anything
// unset. A missing file is not an error; a malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides folds environment variables into the config.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INTELLICHAT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid http(s) URL", c.API.BaseURL)
	}

	if c.API.TimeoutSecs <= 0 {
		return errors.New("api.timeout_secs must be positive")
	}
	if c.API.SlowResponseSecs <= 0 {
		return errors.New("api.slow_response_secs must be positive")
	}
	return nil
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimSuffix(c.API.BaseURL, "/")
}

// Timeout returns the HTTP request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// SlowResponseAfter returns the advisory threshold as a duration.
func (c *Config) SlowResponseAfter() time.Duration {
	return time.Duration(c.API.SlowResponseSecs) * time.Second
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalCfg  *Config
	globalOnce sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
// Load failures degrade to defaults; the TUI surfaces connectivity problems
// at call time instead of refusing to start.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load("")
		if err != nil {
			cfg = Default()
		}
		globalCfg = cfg
	})
	return globalCfg
}
