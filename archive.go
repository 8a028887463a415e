package spicedocs

import (
	"context"
	"time"
)

// Archive and crawl constants. The host segment is fixed so that mirrors
// produced from a test server have the same layout as mirrors of the real
// site.
const (
	// DefaultBaseURL is the root of the SPICE C toolkit documentation tree.
	DefaultBaseURL = "https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/"

	// HostSegment is the top-level directory of every mirror.
	HostSegment = "naif.jpl.nasa.gov"

	// ManifestVersion is written into every new manifest.
	ManifestVersion = "1.0"

	// ManifestFilename is the manifest's location inside a mirror directory.
	ManifestFilename = ".cache_version"

	// MinFileCount is the sanity-check threshold for a complete mirror.
	// The real documentation tree has well over 500 HTML files.
	MinFileCount = 500

	// IndexFilename is the search index database, stored next to the
	// mirror (or inside an explicitly provided archive).
	IndexFilename = ".archive_index.db"
)

// Manifest records the outcome of a completed crawl. It is written once,
// atomically, into the mirror directory at the end of a successful crawl.
// A mirror without a manifest (or with Completed=false) must not be served.
type Manifest struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	BaseURL   string    `json:"base_url"`
	FileCount int       `json:"file_count"`
	Completed bool      `json:"completed"`
}

// Crawler mirrors a documentation tree to local disk.
type Crawler interface {
	// Crawl downloads every in-scope page reachable from baseURL and
	// publishes the result atomically at dest. A previous mirror at dest
	// is either fully replaced or left untouched; partial state never
	// survives an error. Returns the manifest written into the mirror.
	Crawl(ctx context.Context, baseURL, dest string) (*Manifest, error)
}

// ArchiveStats holds aggregate information about a mirror and its index.
type ArchiveStats struct {
	HTMLFiles    int
	OtherFiles   int
	TotalSize    int64
	IndexedPages int
	RankedSearch bool
}
