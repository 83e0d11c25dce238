// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/fueltrack/internal/fuel"
	"github.com/harper/fueltrack/internal/sync"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps MCP server with the fuel engine.
type Server struct {
	mcp        *mcp.Server
	engine     *fuel.Engine
	reconciler *sync.Reconciler
}

// NewServer creates MCP server with all capabilities.
// The reconciler may be nil when no remote endpoint is configured.
func NewServer(engine *fuel.Engine, reconciler *sync.Reconciler) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("fuel engine is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fueltrack",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:        mcpServer,
		engine:     engine,
		reconciler: reconciler,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
