// Package index builds the search index from a mirrored documentation tree.
// It walks the archive, parses each HTML page, and upserts the extracted
// content into the document store.
package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/spicedocs"
	"golang.org/x/sync/errgroup"
)

// Builder indexes the HTML pages of a mirrored archive.
type Builder struct {
	Documents   spicedocs.DocumentService
	Parser      spicedocs.Parser
	Logger      *slog.Logger
	Concurrency int
}

// parsed holds the outcome of processing a single file.
type parsed struct {
	path string
	doc  *spicedocs.Document
	err  error
}

// Rebuild walks root for .html files, parses each one, and upserts the
// results into the document store. Files that cannot be read or parsed are
// logged and skipped. It returns the number of documents indexed.
func (b *Builder) Rebuild(ctx context.Context, root string) (int, error) {
	paths, err := htmlFiles(root)
	if err != nil {
		return 0, err
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	resultCh := make(chan parsed, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, rel := range paths {
			rel := rel
			g.Go(func() error {
				resultCh <- b.processFile(gctx, root, rel)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Upserts run on a single goroutine so SQLite sees one writer.
	indexed := 0
	for result := range resultCh {
		if result.err != nil {
			if b.Logger != nil {
				b.Logger.Warn("skipping page", "path", result.path, "error", result.err)
			}
			continue
		}
		if err := b.Documents.UpsertDocument(ctx, result.doc); err != nil {
			if b.Logger != nil {
				b.Logger.Warn("indexing page failed", "path", result.path, "error", result.err)
			}
			continue
		}
		indexed++
	}

	if err := ctx.Err(); err != nil {
		return indexed, err
	}
	return indexed, nil
}

// processFile reads and parses a single HTML file relative to root.
func (b *Builder) processFile(ctx context.Context, root, rel string) parsed {
	result := parsed{path: rel}

	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	html, err := os.ReadFile(full)
	if err != nil {
		result.err = err
		return result
	}

	content, err := b.Parser.Parse(html)
	if err != nil {
		result.err = err
		return result
	}

	title := content.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	}
	pageURL := content.CanonicalURL
	if pageURL == "" {
		pageURL = rel
	}

	doc := &spicedocs.Document{
		Path:    rel,
		Title:   title,
		Content: content.Text,
		URL:     pageURL,
	}
	if info, err := os.Stat(full); err == nil {
		doc.LastModified = info.ModTime().UTC()
	}

	result.doc = doc
	return result
}

// htmlFiles returns the slash-separated relative paths of all .html files
// under root. Unreadable directory entries are skipped.
func htmlFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, spicedocs.Errorf(spicedocs.EINTERNAL, "walking archive: %v", err)
	}
	return paths, nil
}
