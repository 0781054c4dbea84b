// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *PrefStore {
	t.Helper()
	store, err := NewPrefStoreWithPath(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)
	return store
}

// =============================================================================
// ROUND-TRIP TESTS
// =============================================================================

func TestPrefStore_SetGet(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set(KeyToken, "abc.def.ghi"))

	value, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", value)
}

func TestPrefStore_GetMissing(t *testing.T) {
	store := newStore(t)

	_, err := store.Get("nope")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrefStore_Overwrite(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set(KeyToken, "old"))
	require.NoError(t, store.Set(KeyToken, "new"))

	value, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestPrefStore_Bool(t *testing.T) {
	store := newStore(t)

	assert.False(t, store.GetBool(KeyDarkMode), "missing flag reads false")

	require.NoError(t, store.SetBool(KeyDarkMode, true))
	assert.True(t, store.GetBool(KeyDarkMode))

	require.NoError(t, store.SetBool(KeyDarkMode, false))
	assert.False(t, store.GetBool(KeyDarkMode))
}

func TestPrefStore_Delete(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set(KeyToken, "abc"))
	require.NoError(t, store.Delete(KeyToken))

	_, err := store.Get(KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrefStore_DeleteMissing(t *testing.T) {
	store := newStore(t)

	assert.NoError(t, store.Delete("never-set"))
}

func TestPrefStore_KeysIndependent(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set(KeyToken, "abc"))
	require.NoError(t, store.SetBool(KeyDarkMode, true))
	require.NoError(t, store.Delete(KeyToken))

	assert.True(t, store.GetBool(KeyDarkMode), "deleting the token must not disturb other keys")
}

// =============================================================================
// FILE BEHAVIOR TESTS
// =============================================================================

func TestPrefStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store, err := NewPrefStoreWithPath(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyToken, "abc"))

	reopened, err := NewPrefStoreWithPath(path)
	require.NoError(t, err)

	value, err := reopened.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", value)
}

func TestPrefStore_CorruptFileDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	store := &PrefStore{Path: path}

	_, err := store.Get(KeyToken)
	assert.ErrorIs(t, err, ErrNotFound, "corrupt file reads as empty")

	require.NoError(t, store.Set(KeyToken, "abc"))
	value, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", value, "writing repairs the file")
}

func TestPrefStore_FileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	store := newStore(t)
	require.NoError(t, store.Set(KeyToken, "abc"))

	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "token file must not be group or world readable")
}
