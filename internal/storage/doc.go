// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides client-local persistence for IntelliChat TUI.
//
// Only two values survive restarts: the bearer token and the dark-mode flag.
// Both live in one JSON file under ~/.intellichat/ written atomically with
// owner-only permissions.
//
// # Key Types
//
//   - PrefStore: Small key-value store over a single JSON file
//
// # Usage
//
//	store, _ := storage.NewPrefStore()
//	store.Set(storage.KeyToken, token)
//	dark := store.GetBool(storage.KeyDarkMode)
//
// The token slot has a single writer: the session manager. The transcript is
// deliberately not persisted; it is scoped to one authenticated session.
package storage
