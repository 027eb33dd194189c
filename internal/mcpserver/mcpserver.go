package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the strata analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all strata tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "strata",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds the strata analysis tools to the server.
func (s *Server) registerTools() {
	// Longitudinal quality metrics per commit
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_history",
		Description: describeHistory(),
	}, handleAnalyzeHistory)

	// Raw commit-history extraction
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_commits",
		Description: describeExtract(),
	}, handleExtractCommits)

	// Keyword scan over files at HEAD
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_keywords",
		Description: describeSearch(),
	}, handleSearchKeywords)
}
