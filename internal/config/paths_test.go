package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGlobalConfigDir tests the global directory layout
func TestGlobalConfigDir(t *testing.T) {
	t.Setenv("INTEGRITYFORGE_HOME", "")
	t.Setenv("HOME", t.TempDir())

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, ".integrityforge", filepath.Base(dir))

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	logs, err := GlobalLogsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs"), logs)

	keys, err := GlobalKeysDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keys"), keys)
}

// TestGlobalConfigDir_EnvOverride tests that INTEGRITYFORGE_HOME relocates
// the whole app home: config, logs, and keys move together
func TestGlobalConfigDir_EnvOverride(t *testing.T) {
	appHome := t.TempDir()
	t.Setenv("INTEGRITYFORGE_HOME", appHome)

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, appHome, dir)

	logs, err := GlobalLogsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(appHome, "logs"), logs)

	keys, err := GlobalKeysDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(appHome, "keys"), keys)
}

// TestProjectConfigPath tests the relative project path
func TestProjectConfigPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".integrityforge", ProjectConfigDir())
	assert.Equal(t, filepath.Join(".integrityforge", "config.yaml"), ProjectConfigPath())
}
