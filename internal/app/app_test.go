package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimic/internal/api"
	"mimic/internal/config"
)

func TestRegisterSimulatorsAll(t *testing.T) {
	cfg := config.Default()
	sims := RegisterSimulators(cfg)
	defer DeregisterSimulators(sims)

	require.Len(t, sims, 7)
	names := map[string]bool{}
	for _, sim := range sims {
		names[sim.Name()] = true
		assert.NotNil(t, api.GetSimulator(sim.Name()))
	}
	for _, want := range []string{"blender", "contacts", "github", "googlehome", "linkedin", "media", "messages"} {
		assert.True(t, names[want], "missing simulator %s", want)
	}
}

func TestRegisterSimulatorsDisabled(t *testing.T) {
	disabled := false
	cfg := config.Default()
	cfg.Simulators = map[string]config.SimulatorConfig{
		"blender":  {Enabled: &disabled},
		"contacts": {Enabled: &disabled},
	}
	sims := RegisterSimulators(cfg)
	defer DeregisterSimulators(sims)

	require.Len(t, sims, 5)
	assert.Nil(t, api.GetSimulator("blender"))
	assert.Nil(t, api.GetSimulator("contacts"))
	assert.NotNil(t, api.GetSimulator("messages"))
}

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.StateDir = dir

	app := New(cfg, "test")
	sims := RegisterSimulators(cfg)
	defer DeregisterSimulators(sims)

	// Mutate one simulator, save everything, reset, reload.
	gh := api.GetSimulator("github")
	require.NotNil(t, gh)
	result, err := gh.ExecuteTool(context.Background(), "create_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "Persisted across restart",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	app.saveStates(sims)
	for _, sim := range sims {
		_, err := os.Stat(filepath.Join(dir, sim.Name()+".json"))
		assert.NoError(t, err)
	}

	gh.ResetState()
	_, err = gh.ExecuteTool(context.Background(), "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 3,
	})
	require.Error(t, err)

	require.NoError(t, app.loadStates(sims))
	result, err = gh.ExecuteTool(context.Background(), "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 3,
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestLoadStatesMissingFilesKeepSeed(t *testing.T) {
	cfg := config.Default()
	cfg.StateDir = filepath.Join(t.TempDir(), "never-written")

	app := New(cfg, "test")
	sims := RegisterSimulators(cfg)
	defer DeregisterSimulators(sims)

	require.NoError(t, app.loadStates(sims))
}
