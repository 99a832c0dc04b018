package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mimic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	cfg = Default()
	assert.Equal(t, TransportStreamableHTTP, cfg.Transport)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8090, cfg.Port)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
transport: sse
port: 9000
stateDir: /var/lib/mimic
simulators:
  blender:
    enabled: false
  github:
    stateFile: /tmp/gh.json
    watch: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportSSE, cfg.Transport)
	assert.Equal(t, "localhost", cfg.Host) // default survives partial file
	assert.Equal(t, 9000, cfg.Port)

	assert.False(t, cfg.Simulator("blender").IsEnabled())
	assert.True(t, cfg.Simulator("github").IsEnabled())
	assert.True(t, cfg.Simulator("messages").IsEnabled())
	assert.True(t, cfg.Simulator("github").Watch)
}

func TestStatePathResolution(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "", cfg.StatePath("github"))

	cfg.StateDir = "/var/lib/mimic"
	assert.Equal(t, filepath.Join("/var/lib/mimic", "github.json"), cfg.StatePath("github"))

	cfg.Simulators = map[string]SimulatorConfig{
		"github": {StateFile: "/tmp/gh.json"},
	}
	assert.Equal(t, "/tmp/gh.json", cfg.StatePath("github"))
	assert.Equal(t, filepath.Join("/var/lib/mimic", "media.json"), cfg.StatePath("media"))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Transport = "websocket"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	// stdio does not need a listen address at all
	cfg = Default()
	cfg.Transport = TransportStdio
	cfg.Host = ""
	cfg.Port = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeConfig(t, "transport: carrier-pigeon\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transport")

	path = writeConfig(t, "transport: [nested\n")
	_, err = Load(path)
	require.Error(t, err)
}
