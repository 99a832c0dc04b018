package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mimic/internal/config"
)

func TestEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = 9001

	s := New(cfg, "test")
	assert.Equal(t, "http://127.0.0.1:9001/mcp", s.Endpoint())

	cfg.Transport = config.TransportSSE
	assert.Equal(t, "http://127.0.0.1:9001/sse", New(cfg, "test").Endpoint())

	cfg.Transport = config.TransportStdio
	assert.Equal(t, "stdio", New(cfg, "test").Endpoint())
}

func TestStartRequiresSimulators(t *testing.T) {
	s := New(config.Default(), "test")
	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no simulators registered")
}

func TestStopBeforeStart(t *testing.T) {
	s := New(config.Default(), "test")
	assert.Error(t, s.Stop(context.Background()))
}
