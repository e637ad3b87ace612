package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/brndnsvr/remtag/internal/config"
	"github.com/brndnsvr/remtag/internal/fixture"
)

// isolateConfig points the config loader at a path that does not exist, so
// a developer's real config file cannot leak into tests.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "no-config.yaml"))
}

// newFixtureStoresDir builds a stores directory with reminders R1 and R2.
func newFixtureStoresDir(t *testing.T) string {
	t.Helper()
	return fixture.NewStoresDir(t, fixture.StoreSpec{
		Reminders: []fixture.Reminder{
			{Identifier: "R1", Title: "Buy milk"},
			{Identifier: "R2", Title: "File taxes"},
		},
	})
}

// writeConfigFile writes a config file for tests that exercise the config
// fallback chain.
func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// execute runs the remtag root command with args and captures its output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
