package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/spicedocs/fs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetArchiveStatsArgs defines the get_archive_stats parameters. The tool
// takes none.
type GetArchiveStatsArgs struct{}

// GetArchiveStats reports mirror file counts, total size, indexed page
// count, and the active search capability.
func (s *Server) GetArchiveStats(ctx context.Context, req *mcp.CallToolRequest, args GetArchiveStatsArgs) (*mcp.CallToolResult, any, error) {
	stats, err := fs.ScanStats(s.ArchiveRoot)
	if err != nil {
		return errorResult("Error getting archive stats: %s", err), nil, nil
	}

	indexed, err := s.Documents.CountDocuments(ctx)
	if err != nil {
		return errorResult("Error getting archive stats: %s", err), nil, nil
	}

	searchType := "Basic search"
	if s.Searcher.Ranked() {
		searchType = "Full-text search (FTS5)"
	}

	var sb strings.Builder
	sb.WriteString("# Archive Statistics\n\n")
	fmt.Fprintf(&sb, "**Archive Path:** %s\n", s.ArchiveRoot)
	fmt.Fprintf(&sb, "**HTML Pages:** %d\n", stats.HTMLFiles)
	fmt.Fprintf(&sb, "**Other Files:** %d\n", stats.OtherFiles)
	fmt.Fprintf(&sb, "**Total Files:** %d\n", stats.HTMLFiles+stats.OtherFiles)
	fmt.Fprintf(&sb, "**Indexed Pages:** %d\n", indexed)
	fmt.Fprintf(&sb, "**Total Size:** %.1f MB\n", float64(stats.TotalSize)/(1024*1024))
	fmt.Fprintf(&sb, "**Search Type:** %s\n", searchType)

	return textResult(sb.String()), nil, nil
}
