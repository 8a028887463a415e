package spicedocs

import (
	"context"
	"time"
)

// Document represents one indexed documentation page. Documents are keyed
// by their path relative to the archive root; re-indexing the same path
// replaces the prior record.
type Document struct {
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	URL          string    `json:"url"`
	ContentHash  string    `json:"contentHash"`
	LastModified time.Time `json:"lastModified"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Path == "" {
		return Errorf(EINVALID, "document path required")
	}
	return nil
}

// DocumentService represents a service for managing indexed documents.
type DocumentService interface {
	// UpsertDocument creates or replaces the document stored under its path.
	UpsertDocument(ctx context.Context, doc *Document) error

	// FindDocumentByPath retrieves a document by its relative path.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByPath(ctx context.Context, path string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, ordered by path.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// CountDocuments returns the total number of indexed documents.
	CountDocuments(ctx context.Context) (int, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	// PathGlob filters paths with SQLite GLOB semantics (shell-style
	// patterns). A pattern matching nothing yields zero rows, not an error.
	PathGlob *string `json:"pathGlob"`

	Limit int `json:"limit"`
}

// SearchResult is one match returned by a Searcher.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher finds documents matching a free-text query. The two
// implementations (ranked full-text vs. plain substring matching) are
// selected once at store-initialization time depending on whether the
// FTS5 capability is available; callers depend only on this interface.
type Searcher interface {
	// Search returns up to limit matches for query. An empty result set
	// is a normal outcome, not an error.
	Search(ctx context.Context, query string, limit int) ([]*SearchResult, error)

	// Ranked reports whether results are ordered by a relevance score.
	Ranked() bool
}
