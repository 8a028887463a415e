// Package mcp exposes the archive's query operations as Model Context
// Protocol tools over a stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/spicedocs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName identifies the server to MCP clients.
const ServerName = "spicedocs"

// Server holds the services behind the five documentation tools.
type Server struct {
	ArchiveRoot string
	Documents   spicedocs.DocumentService
	Searcher    spicedocs.Searcher
	Parser      spicedocs.Parser
	Logger      *slog.Logger
	Version     string
}

// MCPServer builds the MCP server with every tool registered.
func (s *Server) MCPServer() *mcp.Server {
	version := s.Version
	if version == "" {
		version = spicedocs.ManifestVersion
	}
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_archive",
		Description: "Search for content across all pages in the SPICE documentation",
	}, s.SearchArchive)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_page",
		Description: "Retrieve the content of a specific page from the SPICE documentation",
	}, s.GetPage)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_pages",
		Description: "List available pages in the SPICE documentation archive",
	}, s.ListPages)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "extract_links",
		Description: "Extract all links from a specific page in the documentation",
	}, s.ExtractLinks)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_archive_stats",
		Description: "Get statistics about the SPICE documentation archive",
	}, s.GetArchiveStats)

	return srv
}

// Run serves tools over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer().Run(ctx, &mcp.StdioTransport{})
}

// textResult wraps text in a successful tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult wraps a descriptive failure in a tool result. Bad arguments
// and missing files are reported this way rather than as transport errors
// so the caller sees what went wrong.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
