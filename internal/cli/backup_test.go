package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupWritesSiblingCopy(t *testing.T) {
	isolateConfig(t)
	dir := newFixtureStoresDir(t)

	stdout, _, err := execute(t, "backup", "--stores-dir", dir)
	require.NoError(t, err)

	path := strings.TrimSpace(stdout)
	assert.Equal(t, dir, filepath.Dir(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestBackupIntoDirectory(t *testing.T) {
	isolateConfig(t)
	dir := newFixtureStoresDir(t)
	backupDir := filepath.Join(t.TempDir(), "backups")

	stdout, _, err := execute(t, "backup", "--stores-dir", dir, "--dir", backupDir)
	require.NoError(t, err)

	path := strings.TrimSpace(stdout)
	assert.Equal(t, backupDir, filepath.Dir(path))
}

func TestBackupNoStore(t *testing.T) {
	isolateConfig(t)
	_, _, err := execute(t, "backup", "--stores-dir", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
