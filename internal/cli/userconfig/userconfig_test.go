package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectedBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	selected, err := GetSelectedBackend()
	require.NoError(t, err)
	assert.Empty(t, selected)

	require.NoError(t, SetSelectedBackend("http://localhost:8080"))

	selected, err = GetSelectedBackend()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", selected)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "rinkside", "config.json"), path)
}

func TestLoad_Corrupt(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "rinkside")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0644))

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse user config file")
}

func TestClearSelectedBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, SetSelectedBackend("https://rink.example.com"))
	require.NoError(t, ClearSelectedBackend())

	selected, err := GetSelectedBackend()
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSave_PrivateFileNoLeftovers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, SetSelectedBackend("http://localhost:8080"))

	path, err := GetConfigPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
