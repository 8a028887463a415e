package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultSearchLimit caps search results when the caller does not ask for
// a specific number.
const DefaultSearchLimit = 10

// SearchArchiveArgs defines the search_archive parameters.
type SearchArchiveArgs struct {
	Query string `json:"query" jsonschema_description:"Search query (supports basic text search)"`
	Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum number of results to return (default: 10)"`
}

// SearchArchive searches indexed page content and returns ranked matches
// with snippets.
func (s *Server) SearchArchive(ctx context.Context, req *mcp.CallToolRequest, args SearchArchiveArgs) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	limit := args.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results, err := s.Searcher.Search(ctx, query, limit)
	if err != nil {
		return errorResult("Search failed: %s", err), nil, nil
	}

	if len(results) == 0 {
		return textResult(fmt.Sprintf("No results found for query: '%s'", query)), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d results for '%s':\n\n", len(results), query)
	for i, result := range results {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, result.Title)
		fmt.Fprintf(&sb, "   Path: %s\n", result.Path)
		if result.URL != result.Path {
			fmt.Fprintf(&sb, "   Original URL: %s\n", result.URL)
		}
		fmt.Fprintf(&sb, "   Snippet: %s\n\n", result.Snippet)
	}

	return textResult(sb.String()), nil, nil
}
