package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mimic/pkg/logging"
)

// Default returns the configuration used when no file overrides anything:
// every simulator enabled, streamable-http on localhost:8090, no persistence.
func Default() Config {
	return Config{
		Transport: TransportStreamableHTTP,
		Host:      "localhost",
		Port:      8090,
	}
}

// DefaultPath returns the first config file path that exists out of
// ./mimic.yaml and $XDG_CONFIG_HOME/mimic/config.yaml (falling back to
// ~/.config), or empty when neither does.
func DefaultPath() string {
	candidates := []string{"mimic.yaml"}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "mimic", "config.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "mimic", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the configuration from path on top of the defaults. An empty
// path falls back to DefaultPath; if no file exists anywhere the defaults
// are returned as-is. An explicitly given path that cannot be read is an
// error, a missing default path is not.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			logging.Debug("Config", "no config file found, using defaults")
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	logging.Info("Config", "loaded configuration from %s", path)
	return cfg, nil
}
