// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// =============================================================================
// DEFAULTS TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 120, cfg.API.TimeoutSecs)
	assert.Equal(t, 60, cfg.API.SlowResponseSecs)
	assert.Equal(t, "IntelliChat", cfg.UI.AppTitle)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

// =============================================================================
// FILE LOADING TESTS
// =============================================================================

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://chat.example.com"
timeout_secs = 30

[ui]
app_title = "Dept Chat"
support_email = "it@example.com"

[export]
output_dir = "/tmp/exports"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.Equal(t, 60, cfg.API.SlowResponseSecs, "unset values keep defaults")
	assert.Equal(t, "Dept Chat", cfg.UI.AppTitle)
	assert.Equal(t, "it@example.com", cfg.UI.SupportEmail)
	assert.Equal(t, "/tmp/exports", cfg.Export.OutputDir)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, `[api` /* unterminated table header */)

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("INTELLICHAT_API_URL", "http://10.0.0.5:8000")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", cfg.API.BaseURL)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, true},
		{"no scheme", func(c *Config) { c.API.BaseURL = "localhost:8000" }, true},
		{"ftp scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, true},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, true},
		{"negative timeout", func(c *Config) { c.API.TimeoutSecs = -5 }, true},
		{"zero slow threshold", func(c *Config) { c.API.SlowResponseSecs = 0 }, true},
		{"https url", func(c *Config) { c.API.BaseURL = "https://chat.internal:8443" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseURL_TrimsTrailingSlash(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "http://localhost:8000/"

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL())
}
