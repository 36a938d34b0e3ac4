// ABOUTME: MCP server setup for the fitness coaching data.
// ABOUTME: Wraps MCP server around programs, history and session state.
package mcp

import (
	"context"

	"github.com/harperreed/fitcoach/internal/history"
	"github.com/harperreed/fitcoach/internal/kvcache"
	"github.com/harperreed/fitcoach/internal/programs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with read access to the client state.
// All tools are read-only; mutation stays with the CLI commands.
type Server struct {
	mcpServer *mcp.Server
	programs  *programs.Service
	history   *history.Service
	cache     kvcache.Store
}

// NewServer creates a new MCP server over the given services.
func NewServer(progs *programs.Service, hist *history.Service, cache kvcache.Store) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitcoach",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		programs:  progs,
		history:   hist,
		cache:     cache,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
