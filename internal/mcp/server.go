// Package mcp implements the Model Context Protocol server that exposes the
// google_search tool. Queries are forwarded to Gemini with Google Search
// grounding and the generated text is returned as the tool result.
package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/gemini-search/internal/version"
	"github.com/mark3labs/mcp-go/server"
)

// Name is advertised to clients during initialize.
const Name = "gemini-search"

// Version is advertised to clients for capability negotiation.
const Version = version.ServerVersion

// Server is an MCP server closed over the google_search tool.
type Server struct {
	srv      *server.MCPServer
	endpoint *Endpoint
}

// NewServer creates a server whose tool calls are answered by s.
func NewServer(s Searcher) *Server {
	e := NewEndpoint(s)
	srv := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, t := range e.Tools() {
		srv.AddTool(t, e.handle)
	}
	return &Server{srv: srv, endpoint: e}
}

// Listen serves newline-delimited JSON-RPC from in to out until in is
// exhausted or ctx is cancelled.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	st := &stream{srv: s.srv, endpoint: s.endpoint, out: out}
	return st.serve(ctx, in)
}

// Serve runs the server over stdio until stdin closes or the process is
// signalled. Diagnostics go to stderr; stdout is reserved for MCP messages.
func Serve(s Searcher) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := NewServer(s)
	slog.Info("Gemini Search MCP server running on stdio - Google Search via Gemini API",
		"version", Version, "model", s.Model(), "transport", "stdio")

	err := srv.Listen(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}
