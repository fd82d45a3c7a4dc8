package file

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/unical/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_ConnectorSettings(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.ConnectorSettings("google")
	assert.False(t, ok)

	settings := ConnectorSettings{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		MaxResults:   250,
	}
	require.NoError(t, store.SetConnectorSettings("google", settings))

	got, ok := store.ConnectorSettings("google")
	assert.True(t, ok)
	assert.Equal(t, settings, got)
}

func TestConfigStore_SetAndLoadAuth(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	expiry := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	auth := domain.Auth{
		AccessToken:    "access",
		RefreshToken:   "refresh",
		ExpirationDate: expiry,
		ID:             "cred-1",
	}
	require.NoError(t, store.SetAuth("cronofy", auth))

	// Round trip through a fresh store to exercise persistence.
	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	got, ok := reloaded.Auth("cronofy")
	require.True(t, ok)
	assert.Equal(t, auth, got)
}

func TestConfigStore_AuthMissing(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Auth("google")
	assert.False(t, ok)
}

func TestConfigStore_ApplyUpdate(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetAuth("google", domain.Auth{
		AccessToken:    "old-access",
		RefreshToken:   "old-refresh",
		ExpirationDate: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		ID:             "cred-1",
	}))

	// A refresh response without a rotated refresh token keeps the
	// stored one.
	require.NoError(t, store.ApplyUpdate("google", domain.CredentialUpdate{
		AccessToken:    "new-access",
		ExpirationDate: "2026-09-01T10:00:00Z",
	}))

	got, ok := store.Auth("google")
	require.True(t, ok)
	assert.Equal(t, "new-access", got.AccessToken)
	assert.Equal(t, "old-refresh", got.RefreshToken)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), got.ExpirationDate)
	assert.Equal(t, "cred-1", got.ID)
}

func TestConfigStore_DeleteAuth(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetAuth("google", domain.Auth{
		AccessToken:    "access",
		RefreshToken:   "refresh",
		ExpirationDate: time.Now().Add(time.Hour),
	}))
	require.NoError(t, store.DeleteAuth("google"))

	_, ok := store.Auth("google")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_LoadCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = valid = toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}
