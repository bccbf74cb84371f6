// ABOUTME: MCP server setup for the BMI measurement store.
// ABOUTME: Wraps the MCP server with the async store and a logger.
package mcp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported in the MCP implementation info.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	store     *storage.Async
	logger    *log.Logger
}

// NewServer creates a new MCP server over store. A nil logger discards output.
func NewServer(store *storage.Async, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bmi",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
