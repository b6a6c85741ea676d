// ABOUTME: Tests for file-backed and in-memory token pair storage
// ABOUTME: Both tokens travel together; half a pair is no session

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Tokens{Access: "a1", Refresh: "r1"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a1", loaded.Access)
	assert.Equal(t, "r1", loaded.Refresh)
}

func TestFileStore_MissingFileIsEmptySession(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.IsZero())
}

func TestFileStore_RefusesHalfPair(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	assert.Error(t, store.Save(Tokens{Access: "a1"}))
	assert.Error(t, store.Save(Tokens{Refresh: "r1"}))
	assert.Error(t, store.Save(Tokens{}))
}

func TestFileStore_HalfPairOnDiskIsEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"a1"}`), 0600))

	loaded, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.True(t, loaded.IsZero())
}

func TestFileStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Tokens{Access: "a1", Refresh: "r1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Tokens{Access: "a1", Refresh: "r1"}))

	require.NoError(t, store.Clear())
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.IsZero())

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestFileStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.IsZero())

	require.NoError(t, store.Save(Tokens{Access: "a1", Refresh: "r1"}))
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a1", loaded.Access)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.IsZero())
}

func TestDefaultPath_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "nova", "session.json"), DefaultPath())
}
