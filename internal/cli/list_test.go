package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmptyStore(t *testing.T) {
	isolateConfig(t)
	dir := newFixtureStoresDir(t)

	stdout, _, err := execute(t, "list", "--stores-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "no tags\n", stdout)
}

func TestListTextGolden(t *testing.T) {
	isolateConfig(t)
	dir := newFixtureStoresDir(t)

	for _, step := range [][2]string{
		{"work", "R1"},
		{"work", "R2"},
		{"Errands", "R1"},
	} {
		_, _, err := execute(t, "add", step[0], step[1], "--stores-dir", dir)
		require.NoError(t, err)
	}

	stdout, _, err := execute(t, "list", "--stores-dir", dir)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_text", []byte(stdout))
}

func TestListJSON(t *testing.T) {
	isolateConfig(t)
	dir := newFixtureStoresDir(t)

	_, _, err := execute(t, "add", "work", "R1", "--stores-dir", dir)
	require.NoError(t, err)

	stdout, _, err := execute(t, "list", "--stores-dir", dir, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	tags, ok := data["tags"].([]interface{})
	require.True(t, ok)
	require.Len(t, tags, 1)
	tag := tags[0].(map[string]interface{})
	assert.Equal(t, "work", tag["name"])
	assert.Equal(t, "work", tag["canonical_name"])
	assert.Equal(t, float64(1), tag["count"])
}

func TestListMissingStoresDir(t *testing.T) {
	isolateConfig(t)
	_, _, err := execute(t, "list", "--stores-dir", "/nonexistent/stores")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestListVerbosePrintsStorePath(t *testing.T) {
	isolateConfig(t)
	dir := newFixtureStoresDir(t)

	_, stderr, err := execute(t, "list", "--stores-dir", dir, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "store: ")
}
