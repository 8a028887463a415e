package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/spicedocs"
)

// Compile-time interface verification.
var _ spicedocs.DocumentService = (*DocumentService)(nil)

// DocumentService implements spicedocs.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// UpsertDocument creates or replaces the document stored under its path.
// The full-text index row is mirrored under the same identity when the
// capability is available.
func (s *DocumentService) UpsertDocument(ctx context.Context, doc *spicedocs.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ContentHash = hashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (path, title, content, url, content_hash, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			url = excluded.url,
			content_hash = excluded.content_hash,
			last_modified = excluded.last_modified
	`, doc.Path, doc.Title, doc.Content, doc.URL, doc.ContentHash,
		doc.LastModified.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	if !s.db.FTSEnabled() {
		return nil
	}

	var rowid int64
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM pages WHERE path = ?", doc.Path).Scan(&rowid); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pages_fts (rowid, title, content, url)
		VALUES (?, ?, ?, ?)
	`, rowid, doc.Title, doc.Content, doc.URL)
	return err
}

// FindDocumentByPath retrieves a document by its relative path.
func (s *DocumentService) FindDocumentByPath(ctx context.Context, path string) (*spicedocs.Document, error) {
	var doc spicedocs.Document
	var lastModified string

	err := s.db.QueryRowContext(ctx, `
		SELECT path, title, content, url, content_hash, last_modified
		FROM pages
		WHERE path = ?
	`, path).Scan(&doc.Path, &doc.Title, &doc.Content, &doc.URL, &doc.ContentHash, &lastModified)

	if err == sql.ErrNoRows {
		return nil, spicedocs.Errorf(spicedocs.ENOTFOUND, "page %q not found", path)
	}
	if err != nil {
		return nil, err
	}

	doc.LastModified, err = parseRFC3339(lastModified, "last_modified")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter, ordered by path.
// A glob pattern that matches nothing yields zero rows, never an error.
func (s *DocumentService) FindDocuments(ctx context.Context, filter spicedocs.DocumentFilter) ([]*spicedocs.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT path, title, content, url, content_hash, last_modified FROM pages WHERE 1=1")

	if filter.PathGlob != nil {
		query.WriteString(" AND path GLOB ?")
		args = append(args, *filter.PathGlob)
	}

	query.WriteString(" ORDER BY path ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*spicedocs.Document
	for rows.Next() {
		var doc spicedocs.Document
		var lastModified string

		if err := rows.Scan(&doc.Path, &doc.Title, &doc.Content, &doc.URL, &doc.ContentHash, &lastModified); err != nil {
			return nil, err
		}

		doc.LastModified, err = parseRFC3339(lastModified, "last_modified")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// CountDocuments returns the total number of indexed documents.
func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count)
	return count, err
}
