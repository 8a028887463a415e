// Package archivetest builds small fixture documentation mirrors for
// tests. The fixture tree has known titles, bodies and cross-links so
// search, retrieval and link-extraction behavior can be asserted exactly.
package archivetest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/fs"
)

// PageHTML generates an HTML page with a consistent structure.
func PageHTML(title, body string, links ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", title)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", title)
	fmt.Fprintf(&b, "    <p>%s</p>\n", body)
	if len(links) > 0 {
		b.WriteString("    <p>Links:")
		for _, link := range links {
			fmt.Fprintf(&b, ` <a href="%s">%s</a>`, link, link)
		}
		b.WriteString("</p>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// WriteArchive builds the six-page fixture archive under dir.
func WriteArchive(tb testing.TB, dir string) {
	tb.Helper()

	pages := map[string]string{
		"index.html": PageHTML(
			"SPICE Documentation Index",
			"Welcome to the SPICE toolkit documentation. This is a test archive.",
			"page_kernels.html", "page_time.html", "page_links.html", "subdir/nested.html",
		),
		"page_kernels.html": PageHTML(
			"SPICE Kernels Guide",
			"Information about SPICE kernel files including SPK and CK attitude kernels.",
			"page_time.html", "index.html",
		),
		"page_time.html": PageHTML(
			"Time Systems in SPICE",
			"Documentation about ephemeris time, UTC, and other time systems used in SPICE calculations.",
			"index.html", "page_kernels.html",
		),
		"page_links.html": PageHTML(
			"Links Test Page",
			"This page contains various types of links for testing link extraction.",
			"index.html", "./page_kernels.html", "subdir/nested.html",
			"https://naif.jpl.nasa.gov/", "https://example.com/test",
		),
		"subdir/nested.html": PageHTML(
			"Nested Page",
			"This is a nested page in a subdirectory with relative links.",
			"../index.html", "../page_kernels.html", "deep/deeper.html",
		),
		"subdir/deep/deeper.html": PageHTML(
			"Deeply Nested Page",
			"This is a deeply nested page for testing path resolution.",
			"../../index.html", "../nested.html",
		),
	}

	for rel, content := range pages {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("archivetest: mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			tb.Fatalf("archivetest: write %s: %v", path, err)
		}
	}
}

// WriteMirror builds a complete valid mirror under cacheDir: the fixture
// archive below the host segment plus a completed manifest.
func WriteMirror(tb testing.TB, cacheDir string) {
	tb.Helper()

	WriteArchive(tb, filepath.Join(cacheDir, spicedocs.HostSegment))

	m := &spicedocs.Manifest{
		Version:   spicedocs.ManifestVersion,
		Timestamp: time.Now().UTC(),
		BaseURL:   spicedocs.DefaultBaseURL,
		FileCount: 6,
		Completed: true,
	}
	if err := fs.WriteManifest(filepath.Join(cacheDir, spicedocs.ManifestFilename), m); err != nil {
		tb.Fatalf("archivetest: write manifest: %v", err)
	}
}
