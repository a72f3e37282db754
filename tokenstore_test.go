package shoptaboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore_RoundTrip(t *testing.T) {
	store := NewMemoryTokenStore()

	assert.False(t, store.Has())
	_, ok := store.AccessToken()
	assert.False(t, ok)
	_, ok = store.RefreshToken()
	assert.False(t, ok)

	err := store.Save(Tokens{AccessToken: "access-1", RefreshToken: "refresh-1"})
	require.NoError(t, err)

	assert.True(t, store.Has())
	access, ok := store.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "access-1", access)
	refresh, ok := store.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "refresh-1", refresh)

	require.NoError(t, store.Clear())
	assert.False(t, store.Has())
}

func TestNewFileTokenStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "deeper", "tokens.json")

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	require.NotNil(t, store)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, path, store.Path())

	// No tokens saved yet, so no file either.
	assert.False(t, store.Has())
}

func TestFileTokenStore_PersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.json")

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(Tokens{AccessToken: "access-1", RefreshToken: "refresh-1"}))

	// A second store opened on the same path sees the saved pair.
	reopened, err := NewFileTokenStore(path)
	require.NoError(t, err)

	assert.True(t, reopened.Has())
	access, ok := reopened.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "access-1", access)
	refresh, ok := reopened.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "refresh-1", refresh)
}

func TestFileTokenStore_SaveReplacesWholePair(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.json")

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(Tokens{AccessToken: "old-access", RefreshToken: "old-refresh"}))
	require.NoError(t, store.Save(Tokens{AccessToken: "new-access", RefreshToken: "new-refresh"}))

	access, ok := store.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "new-access", access)
	refresh, ok := store.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "new-refresh", refresh)
}

func TestFileTokenStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.json")

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(Tokens{AccessToken: "a", RefreshToken: "r"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// On-disk shape is the wire token pair.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var tokens Tokens
	require.NoError(t, json.Unmarshal(data, &tokens))
	assert.Equal(t, "a", tokens.AccessToken)
	assert.Equal(t, "r", tokens.RefreshToken)
}

func TestFileTokenStore_ClearIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.json")

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(Tokens{AccessToken: "a", RefreshToken: "r"}))

	require.NoError(t, store.Clear())
	assert.False(t, store.Has())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-empty store succeeds.
	require.NoError(t, store.Clear())
}

func TestFileTokenStore_RejectsCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.json")

	require.NoError(t, os.WriteFile(path, []byte("not json{{{"), 0o600))

	store, err := NewFileTokenStore(path)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestFileTokenStore_HandlesEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tokens.json")

	require.NoError(t, os.WriteFile(path, []byte{}, 0o600))

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	assert.False(t, store.Has())
}
