package mcp

import (
	"github.com/d6e/cratedocs/api"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server for cratedocs
type Server struct {
	server *server.MCPServer
	client *api.Client
}

// NewServer creates a new MCP server instance backed by the given
// documentation client.
func NewServer(client *api.Client) *Server {
	s := server.NewMCPServer("cratedocs", api.Version,
		server.WithInstructions("Rust documentation server for looking up crate and item documentation."),
	)

	registerTools(s, client)

	return &Server{
		server: s,
		client: client,
	}
}

// Run serves MCP over stdio until the client disconnects
func (s *Server) Run() error {
	return server.ServeStdio(s.server)
}

// registerTools registers all available tools with the MCP server
func registerTools(s *server.MCPServer, client *api.Client) {
	s.AddTools(InitTools(client)...)
}

func newServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}
