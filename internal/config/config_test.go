package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingIsZero(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadFileParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stores_dir: /tmp/stores
busy_timeout_ms: 2500
backup_dir: /tmp/backups
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/stores", cfg.StoresDir)
	assert.Equal(t, "/tmp/backups", cfg.BackupDir)
	assert.Equal(t, 2500*time.Millisecond, cfg.BusyTimeout())
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stores_dir: [unclosed"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadFileNegativeTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("busy_timeout_ms: -1"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elsewhere.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stores_dir: /custom"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/custom", cfg.StoresDir)
}

func TestBusyTimeoutZeroWhenUnset(t *testing.T) {
	assert.Equal(t, time.Duration(0), Config{}.BusyTimeout())
}
