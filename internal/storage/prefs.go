// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Well-known preference keys. These mirror the values the front-end persists
// across page loads: the bearer token and the dark-mode flag.
const (
	KeyToken    = "token"
	KeyDarkMode = "darkMode"
)

// ErrNotFound indicates the requested key has no stored value.
var ErrNotFound = errors.New("preference not found")

// =============================================================================
// PREFERENCE STORE
// =============================================================================

// PrefStore handles persistence of the small set of client-side preferences.
// Values live in a single JSON file; the token is treated as a single-writer
// slot owned by the session manager.
type PrefStore struct {
	// Path is the preference file location.
	// Default: ~/.intellichat/prefs.json
	Path string
}

// NewPrefStore creates a store under the user's home directory.
func NewPrefStore() (*PrefStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".intellichat")
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}

	return &PrefStore{Path: filepath.Join(baseDir, "prefs.json")}, nil
}

// NewPrefStoreWithPath creates a store at a custom location.
func NewPrefStoreWithPath(path string) (*PrefStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return &PrefStore{Path: path}, nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// Get returns the stored value for key, or ErrNotFound.
func (s *PrefStore) Get(key string) (string, error) {
	prefs, err := s.load()
	if err != nil {
		return "", err
	}

	value, ok := prefs[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// GetBool returns a stored flag. Missing or unparseable values are false.
func (s *PrefStore) GetBool(key string) bool {
	value, err := s.Get(key)
	if err != nil {
		return false
	}
	return value == "true"
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// Set stores a value under key.
func (s *PrefStore) Set(key, value string) error {
	prefs, err := s.load()
	if err != nil {
		return err
	}

	prefs[key] = value
	return s.save(prefs)
}

// SetBool stores a flag under key.
func (s *PrefStore) SetBool(key string, value bool) error {
	if value {
		return s.Set(key, "true")
	}
	return s.Set(key, "false")
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *PrefStore) Delete(key string) error {
	prefs, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := prefs[key]; !ok {
		return nil
	}
	delete(prefs, key)
	return s.save(prefs)
}

// =============================================================================
// FILE I/O
// =============================================================================

// load reads the preference file. A missing file yields an empty map.
func (s *PrefStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	prefs := make(map[string]string)
	if err := json.Unmarshal(data, &prefs); err != nil {
		// A corrupt preference file degrades to empty rather than wedging
		// startup; the worst case is a re-login.
		return make(map[string]string), nil
	}
	return prefs, nil
}

// save writes the preference file atomically. The file carries the bearer
// token, so it is not group or world readable.
func (s *PrefStore) save(prefs map[string]string) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.Path)
}
