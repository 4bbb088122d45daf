// ABOUTME: MCP server setup for the pulse record store and analysis engine.
// ABOUTME: Wraps MCP server with a storage Repository and analysis options.
package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pulsekit/pulse/internal/align"
	"github.com/pulsekit/pulse/internal/analysis"
	"github.com/pulsekit/pulse/internal/storage"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer  *mcp.Server
	repo       storage.Repository
	opts       analysis.Options
	windowDays int
}

// NewServer creates a new MCP server over the given storage.
func NewServer(repo storage.Repository, opts analysis.Options, windowDays int) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pulse",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:  mcpServer,
		repo:       repo,
		opts:       opts,
		windowDays: windowDays,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// alignedDays loads the analysis window and aligns it.
func (s *Server) alignedDays() ([]*align.Day, error) {
	since := time.Now().UTC().AddDate(0, 0, -s.windowDays)
	recs, err := storage.LoadRecords(s.repo, since)
	if err != nil {
		return nil, err
	}
	return align.Align(recs), nil
}
