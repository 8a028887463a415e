package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/spicedocs"
)

// NewSearcher returns the search strategy for db, chosen once at
// store-initialization time: ranked bm25 full-text search when the FTS5
// capability is available, plain substring matching otherwise.
func NewSearcher(db *DB) spicedocs.Searcher {
	if db.FTSEnabled() {
		return NewFTSSearcher(db)
	}
	return NewSubstringSearcher(db)
}

// Compile-time interface verification.
var (
	_ spicedocs.Searcher = (*FTSSearcher)(nil)
	_ spicedocs.Searcher = (*SubstringSearcher)(nil)
)

// FTSSearcher implements ranked full-text search over the pages_fts
// virtual table, ordered by bm25 relevance.
type FTSSearcher struct {
	db *DB
}

// NewFTSSearcher creates an FTSSearcher.
func NewFTSSearcher(db *DB) *FTSSearcher {
	return &FTSSearcher{db: db}
}

// Ranked reports that results are relevance-ordered.
func (s *FTSSearcher) Ranked() bool { return true }

// Search returns up to limit bm25-ranked matches with highlighted
// snippets.
func (s *FTSSearcher) Search(ctx context.Context, query string, limit int) ([]*spicedocs.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.path, p.title, p.url,
		       snippet(pages_fts, 1, '[', ']', '...', 16)
		FROM pages_fts
		JOIN pages p ON pages_fts.rowid = p.id
		WHERE pages_fts MATCH ?
		ORDER BY bm25(pages_fts)
		LIMIT ?
	`, quoteMatch(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows)
}

// SubstringSearcher is the fallback when FTS5 is unavailable: a
// case-insensitive substring match against title and content, unordered
// beyond natural storage order.
type SubstringSearcher struct {
	db *DB
}

// NewSubstringSearcher creates a SubstringSearcher.
func NewSubstringSearcher(db *DB) *SubstringSearcher {
	return &SubstringSearcher{db: db}
}

// Ranked reports that results carry no relevance ordering.
func (s *SubstringSearcher) Ranked() bool { return false }

// Search returns up to limit substring matches with a fixed window of
// content around the first occurrence as the snippet.
func (s *SubstringSearcher) Search(ctx context.Context, query string, limit int) ([]*spicedocs.SearchResult, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, title, url,
		       substr(content, max(1, instr(lower(content), lower(?)) - 50), 150)
		FROM pages
		WHERE title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'
		LIMIT ?
	`, query, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows)
}

// quoteMatch turns free text into an FTS5 MATCH expression: each
// whitespace-separated term becomes a quoted string, so user input
// containing FTS5 operators or punctuation cannot break the query.
// Terms are implicitly ANDed.
func quoteMatch(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
