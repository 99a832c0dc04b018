package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag variables persist across Execute calls within one test binary.
	stateDir = ""
	rootConfigPath = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestStateSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "state", "save", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "saved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 7)
	_, err = os.Stat(filepath.Join(dir, "github.json"))
	assert.NoError(t, err)

	out, err = runCommand(t, "state", "load", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "loaded")
}

func TestStateSaveRequiresDir(t *testing.T) {
	_, err := runCommand(t, "state", "save")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no state directory")
}

func TestListTools(t *testing.T) {
	out, err := runCommand(t, "list", "tools", "github")
	require.NoError(t, err)
	assert.Contains(t, out, "github_search_repositories")
	assert.NotContains(t, out, "media_search_media")

	_, err = runCommand(t, "list", "tools", "nope")
	require.Error(t, err)
}

func TestListSimulators(t *testing.T) {
	out, err := runCommand(t, "list", "simulators")
	require.NoError(t, err)
	for _, name := range []string{"blender", "contacts", "github", "googlehome", "linkedin", "media", "messages"} {
		assert.Contains(t, out, name)
	}
}
