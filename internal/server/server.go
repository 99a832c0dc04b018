package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"mimic/internal/config"
	"mimic/pkg/logging"
)

// Server hosts the MCP endpoint for all registered simulators over the
// configured transport.
type Server struct {
	cfg     config.Config
	version string

	mu     sync.Mutex
	server *mcpserver.MCPServer

	sseServer            *mcpserver.SSEServer
	streamableHTTPServer *mcpserver.StreamableHTTPServer
	stdioServer          *mcpserver.StdioServer

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a server for the given configuration. version is reported in
// the MCP initialize handshake.
func New(cfg config.Config, version string) *Server {
	return &Server{cfg: cfg, version: version}
}

// Start builds the tool list from the simulator registry and serves the
// configured transport. It returns once the transport is listening; errors
// from the serving goroutine are logged.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return fmt.Errorf("server already started")
	}
	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	mcpSrv := mcpserver.NewMCPServer(
		"mimic",
		s.version,
		mcpserver.WithToolCapabilities(true),
	)

	tools := createToolsFromSimulators()
	if len(tools) == 0 {
		return fmt.Errorf("no simulators registered, nothing to serve")
	}
	mcpSrv.AddTools(tools...)
	s.server = mcpSrv
	logging.Info("Server", "serving %d tools", len(tools))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	switch s.cfg.Transport {
	case config.TransportSSE:
		logging.Info("Server", "starting MCP server with SSE transport on %s", addr)
		baseURL := fmt.Sprintf("http://%s", addr)
		s.sseServer = mcpserver.NewSSEServer(
			s.server,
			mcpserver.WithBaseURL(baseURL),
			mcpserver.WithSSEEndpoint("/sse"),
			mcpserver.WithMessageEndpoint("/message"),
			mcpserver.WithKeepAlive(true),
			mcpserver.WithKeepAliveInterval(30*time.Second),
		)
		sseServer := s.sseServer
		go func() {
			if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Server", err, "SSE server error")
			}
		}()

	case config.TransportStdio:
		logging.Info("Server", "starting MCP server with stdio transport")
		s.stdioServer = mcpserver.NewStdioServer(s.server)
		stdioServer := s.stdioServer
		serveCtx := s.ctx
		go func() {
			if err := stdioServer.Listen(serveCtx, os.Stdin, os.Stdout); err != nil && serveCtx.Err() == nil {
				logging.Error("Server", err, "stdio server error")
			}
		}()

	default:
		logging.Info("Server", "starting MCP server with streamable-http transport on %s", addr)
		s.streamableHTTPServer = mcpserver.NewStreamableHTTPServer(s.server)
		streamableServer := s.streamableHTTPServer
		go func() {
			if err := streamableServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Server", err, "streamable HTTP server error")
			}
		}()
	}

	return nil
}

// Stop shuts down the transport and releases the server. Safe to call once
// after a successful Start.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.server == nil {
		s.mu.Unlock()
		return fmt.Errorf("server not started")
	}
	cancelFunc := s.cancelFunc
	sseServer := s.sseServer
	streamableServer := s.streamableHTTPServer
	s.mu.Unlock()

	logging.Info("Server", "stopping MCP server")
	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sseServer != nil {
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "error shutting down SSE server")
		}
	}
	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "error shutting down streamable HTTP server")
		}
	}
	// The stdio server stops on context cancellation.

	s.mu.Lock()
	s.server = nil
	s.sseServer = nil
	s.streamableHTTPServer = nil
	s.stdioServer = nil
	s.mu.Unlock()
	return nil
}

// Endpoint returns the URL clients connect to for the configured transport.
func (s *Server) Endpoint() string {
	switch s.cfg.Transport {
	case config.TransportSSE:
		return fmt.Sprintf("http://%s:%d/sse", s.cfg.Host, s.cfg.Port)
	case config.TransportStdio:
		return "stdio"
	default:
		return fmt.Sprintf("http://%s:%d/mcp", s.cfg.Host, s.cfg.Port)
	}
}
