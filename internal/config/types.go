package config

import (
	"fmt"
	"path/filepath"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	TransportStdio          Transport = "stdio"
	TransportSSE            Transport = "sse"
	TransportStreamableHTTP Transport = "streamable-http"
)

// SimulatorConfig holds the per-simulator settings. A nil Enabled means
// enabled; only an explicit `enabled: false` turns a simulator off.
type SimulatorConfig struct {
	Enabled   *bool  `yaml:"enabled,omitempty"`
	StateFile string `yaml:"stateFile,omitempty"`
	Watch     bool   `yaml:"watch,omitempty"`
}

// IsEnabled reports whether the simulator should be registered.
func (c SimulatorConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Config is the complete mimic configuration.
type Config struct {
	Transport  Transport                  `yaml:"transport"`
	Host       string                     `yaml:"host"`
	Port       int                        `yaml:"port"`
	StateDir   string                     `yaml:"stateDir,omitempty"`
	Simulators map[string]SimulatorConfig `yaml:"simulators,omitempty"`
}

// Simulator returns the settings for the named simulator, falling back to
// the zero value (enabled, no state file) when none are configured.
func (c *Config) Simulator(name string) SimulatorConfig {
	return c.Simulators[name]
}

// StatePath resolves where the named simulator's state file lives: the
// explicit per-simulator stateFile if set, otherwise <stateDir>/<name>.json,
// otherwise empty meaning no persistence.
func (c *Config) StatePath(name string) string {
	sim := c.Simulator(name)
	if sim.StateFile != "" {
		return sim.StateFile
	}
	if c.StateDir != "" {
		return filepath.Join(c.StateDir, name+".json")
	}
	return ""
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
	default:
		return fmt.Errorf("invalid transport %q: must be stdio, sse, or streamable-http", c.Transport)
	}
	if c.Transport != TransportStdio {
		if c.Host == "" {
			return fmt.Errorf("host must not be empty for transport %q", c.Transport)
		}
		if c.Port < 1 || c.Port > 65535 {
			return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
		}
	}
	return nil
}
