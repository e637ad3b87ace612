package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenariosAgainstGoldenFiles(t *testing.T) {
	scenarios, err := LoadScenarioDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, scenarios, "no scenario files found")

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			RunWithGolden(t, s)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadScenarioInvalidYAML(t *testing.T) {
	path := writeScenario(t, "steps: [unclosed")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}

func TestLoadScenarioUnknownOp(t *testing.T) {
	path := writeScenario(t, `
name: bad-op
reminders:
  - id: R1
steps:
  - op: rename
    tag: work
    reminder: R1
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "rename"`)
}

func TestLoadScenarioUnseededReminder(t *testing.T) {
	path := writeScenario(t, `
name: missing-reminder
reminders:
  - id: R1
steps:
  - op: add
    tag: work
    reminder: R9
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `reminder "R9" not seeded`)
}

func TestLoadScenarioMissingName(t *testing.T) {
	path := writeScenario(t, "reminders:\n  - id: R1\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
