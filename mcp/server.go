// Package mcp exposes league documentation search to MCP clients over
// stdio or streamable HTTP.
package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/leaguedoc/leaguedoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for leaguedoc.
type Server struct {
	search    leaguedoc.SearchService
	documents leaguedoc.DocumentService
	server    *mcp.Server
}

// NewServer creates a new MCP server around the given services.
func NewServer(search leaguedoc.SearchService, documents leaguedoc.DocumentService) (*Server, error) {
	if search == nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "search service required")
	}

	impl := &mcp.Implementation{
		Name:    "leaguedoc",
		Version: Version,
	}

	s := &Server{
		search:    search,
		documents: documents,
		server:    mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
