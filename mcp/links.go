package mcp

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/fs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ExtractLinksArgs defines the extract_links parameters.
type ExtractLinksArgs struct {
	Path         string `json:"path" jsonschema_description:"Relative path to the HTML file"`
	InternalOnly *bool  `json:"internal_only,omitempty" jsonschema_description:"Only return links to other pages in the archive (default: true)"`
}

// ExtractLinks lists the anchors of one mirrored page. In internal-only
// mode a link survives when it is a same-page fragment or resolves to a
// file that exists inside the archive.
func (s *Server) ExtractLinks(ctx context.Context, req *mcp.CallToolRequest, args ExtractLinksArgs) (*mcp.CallToolResult, any, error) {
	internalOnly := args.InternalOnly == nil || *args.InternalOnly

	full, err := fs.SafeJoin(s.ArchiveRoot, args.Path)
	if err != nil {
		return errorResult("Error: Invalid path '%s'", args.Path), nil, nil
	}
	html, err := os.ReadFile(full)
	if err != nil {
		return errorResult("Error: File '%s' not found", args.Path), nil, nil
	}

	content, err := s.Parser.Parse(html)
	if err != nil {
		return errorResult("Error extracting links from '%s': %s", args.Path, err), nil, nil
	}

	var links []spicedocs.Link
	for _, link := range content.Links {
		if !internalOnly || s.isInternal(link.Href, args.Path) {
			links = append(links, link)
		}
	}

	qualifier := ""
	if internalOnly {
		qualifier = "internal "
	}
	if len(links) == 0 {
		return textResult(fmt.Sprintf("No %slinks found in '%s'", qualifier, args.Path)), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d %slinks in '%s':\n\n", len(links), qualifier, args.Path)
	for _, link := range links {
		text := link.Text
		if text == "" {
			text = "No text"
		}
		fmt.Fprintf(&sb, "• [%s](%s)\n", text, link.Href)
	}

	return textResult(sb.String()), nil, nil
}

// isInternal reports whether href points inside the archive when read from
// pagePath. Same-page fragments count; http(s) links never do.
func (s *Server) isInternal(href, pagePath string) bool {
	if strings.HasPrefix(href, "http") {
		return false
	}

	// Drop the fragment and query before resolving.
	base := href
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return strings.HasPrefix(href, "#")
	}

	var rel string
	if strings.HasPrefix(base, "/") {
		rel = strings.TrimPrefix(base, "/")
	} else {
		rel = path.Join(path.Dir(pagePath), base)
	}

	full, err := fs.SafeJoin(s.ArchiveRoot, rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}
