// Package mcpserver exposes the editing session to AI agents over the MCP
// protocol: reading and replacing content, committing snapshots, stepping
// through history, and previewing diffs.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/drafter/internal/hooks"
	"github.com/mark3labs/drafter/internal/logger"
	"github.com/mark3labs/drafter/internal/session"
	"github.com/mark3labs/mcp-go/server"
)

// Server manages an embedded MCP HTTP server bound to one editing session.
type Server struct {
	store      *session.Store
	sess       *session.Session
	workDir    string
	hooksCfg   *hooks.Config
	autoCommit bool
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server
	port       int
	mu         sync.Mutex
}

// New creates a server for the given session. Store mutations are recorded
// in the event log; hooksCfg may be nil if no hooks are configured.
func New(store *session.Store, sess *session.Session, workDir string, hooksCfg *hooks.Config) *Server {
	return &Server{
		store:    store,
		sess:     sess,
		workDir:  workDir,
		hooksCfg: hooksCfg,
	}
}

// SetAutoCommit makes content-set commit a snapshot immediately after
// replacing the content.
func (s *Server) SetAutoCommit(enabled bool) {
	s.autoCommit = enabled
}

// Start starts the MCP HTTP server on a random available port and returns
// the port number.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = server.NewMCPServer(
		"drafter-tools",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	if err := s.registerTools(); err != nil {
		return 0, fmt.Errorf("failed to register tools: %w", err)
	}

	// Pre-open the listener so the assigned port is known before serving.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{Handler: mux}
	s.httpServer = mcpHandler

	logger.Debug("Starting MCP server on port %d", s.port)

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	return s.port, nil
}

// Stop shuts down the MCP HTTP server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	s.mcpServer = nil
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
