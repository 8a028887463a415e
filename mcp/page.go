package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/fs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultListLimit caps list_pages output when the caller does not ask for
// a specific number.
const DefaultListLimit = 50

// GetPageArgs defines the get_page parameters.
type GetPageArgs struct {
	Path       string `json:"path" jsonschema_description:"Relative path to the HTML file (e.g., 'index.html', 'ug/mkspk.html')"`
	IncludeRaw bool   `json:"include_raw,omitempty" jsonschema_description:"Include raw HTML content in addition to parsed text"`
}

// GetPage reads one mirrored page and returns its title and visible text,
// optionally with the raw HTML appended.
func (s *Server) GetPage(ctx context.Context, req *mcp.CallToolRequest, args GetPageArgs) (*mcp.CallToolResult, any, error) {
	full, err := fs.SafeJoin(s.ArchiveRoot, args.Path)
	if err != nil {
		return errorResult("Error: Path '%s' is outside the archive or invalid", args.Path), nil, nil
	}

	info, err := os.Stat(full)
	if err != nil {
		return errorResult("Error: File '%s' not found in archive", args.Path), nil, nil
	}
	if info.IsDir() {
		return errorResult("Error: '%s' is a directory, not a file", args.Path), nil, nil
	}

	html, err := os.ReadFile(full)
	if err != nil {
		return errorResult("Error reading file '%s': %s", args.Path, err), nil, nil
	}

	content, err := s.Parser.Parse(html)
	if err != nil {
		return errorResult("Error reading file '%s': %s", args.Path, err), nil, nil
	}

	title := content.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(args.Path), filepath.Ext(args.Path))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**Path:** %s\n", args.Path)
	fmt.Fprintf(&sb, "**File size:** %d bytes\n\n", len(html))
	fmt.Fprintf(&sb, "**Content:**\n%s", content.Text)
	if args.IncludeRaw {
		fmt.Fprintf(&sb, "\n\n**Raw HTML:**\n```html\n%s\n```", html)
	}

	return textResult(sb.String()), nil, nil
}

// ListPagesArgs defines the list_pages parameters.
type ListPagesArgs struct {
	FilterPattern string `json:"filter_pattern,omitempty" jsonschema_description:"Optional filter pattern (e.g., '*.html', 'ug/*')"`
	Limit         int    `json:"limit,omitempty" jsonschema_description:"Maximum number of pages to return (default: 50)"`
}

// ListPages lists indexed pages ordered by path, optionally narrowed by a
// GLOB pattern.
func (s *Server) ListPages(ctx context.Context, req *mcp.CallToolRequest, args ListPagesArgs) (*mcp.CallToolResult, any, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	filter := spicedocs.DocumentFilter{Limit: limit}
	if args.FilterPattern != "" {
		pattern := args.FilterPattern
		filter.PathGlob = &pattern
	}

	docs, err := s.Documents.FindDocuments(ctx, filter)
	if err != nil {
		return errorResult("Error listing pages: %s", err), nil, nil
	}

	if len(docs) == 0 {
		return textResult("No pages found in archive"), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Archive contains %d pages", len(docs))
	if args.FilterPattern != "" {
		fmt.Fprintf(&sb, " matching '%s'", args.FilterPattern)
	}
	sb.WriteString(":\n\n")
	for _, doc := range docs {
		fmt.Fprintf(&sb, "• **%s**\n  Path: %s\n", doc.Title, doc.Path)
		if doc.URL != doc.Path {
			fmt.Fprintf(&sb, "  Original: %s\n", doc.URL)
		}
		sb.WriteString("\n")
	}

	return textResult(sb.String()), nil, nil
}
