// Package cache composes the mirror validator and the crawler behind a
// single get-or-refresh operation. It owns the mirror directory; the
// indexer and query engine only ever read from it.
package cache

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/spicedocs"
)

// Environment variables recognized at startup.
const (
	// EnvCacheDir overrides the platform cache directory.
	EnvCacheDir = "SPICEDOCS_CACHE_DIR"

	// EnvBaseURL overrides the documentation base URL.
	EnvBaseURL = "SPICEDOCS_BASE_URL"

	// EnvSkipDownload forces Ensure to fail fast instead of crawling.
	EnvSkipDownload = "SPICEDOCS_SKIP_DOWNLOAD"
)

// Cache provides a usable documentation mirror, downloading it if the
// on-disk copy is missing or invalid.
//
// Cache performs no inter-process locking: two processes racing on an
// invalid directory will both crawl into separate temporary locations and
// the last atomic publish wins. That wastes network work but cannot
// corrupt the mirror.
type Cache struct {
	// Dir is the cache directory holding the mirror, its manifest and
	// the search index database.
	Dir string

	// BaseURL is the documentation root to crawl.
	// Empty means spicedocs.DefaultBaseURL.
	BaseURL string

	// SkipDownload makes Ensure fail fast when the mirror is invalid
	// instead of attempting network I/O.
	SkipDownload bool

	// MinFileCount overrides the mirror validity threshold.
	// Zero means spicedocs.MinFileCount.
	MinFileCount int

	Crawler spicedocs.Crawler
	Logger  *slog.Logger
}

// Ensure returns the documentation root inside a valid mirror, crawling
// first if the existing mirror is missing or invalid. The common path — a
// valid cached mirror — performs no network activity.
func (c *Cache) Ensure(ctx context.Context) (string, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	minFiles := c.MinFileCount
	if minFiles == 0 {
		minFiles = spicedocs.MinFileCount
	}

	root := filepath.Join(c.Dir, spicedocs.HostSegment)

	if ValidMin(c.Dir, minFiles) {
		logger.Debug("using existing documentation cache", "dir", c.Dir)
		return root, nil
	}
	logger.Info("documentation cache not found or invalid", "dir", c.Dir)

	if err := c.probeWritable(); err != nil {
		return "", err
	}

	if c.SkipDownload {
		return "", spicedocs.Errorf(spicedocs.EINVALID,
			"cache invalid and download skipped (%s=true)", EnvSkipDownload)
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = spicedocs.DefaultBaseURL
	}

	manifest, err := c.Crawler.Crawl(ctx, baseURL, c.Dir)
	if err != nil {
		return "", err
	}
	logger.Info("documentation cached", "dir", c.Dir, "files", manifest.FileCount)

	return root, nil
}

// probeWritable verifies the cache location accepts writes by creating
// and removing a marker file.
func (c *Cache) probeWritable() error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return spicedocs.Errorf(spicedocs.EINVALID, "cannot create cache directory %q: %v", c.Dir, err)
	}

	marker := filepath.Join(c.Dir, ".write_test")
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return spicedocs.Errorf(spicedocs.EINVALID, "no write permission for cache directory %q: %v", c.Dir, err)
	}
	return os.Remove(marker)
}

// DefaultDir returns the platform-appropriate cache directory, honoring
// the EnvCacheDir override.
func DefaultDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".spicedocs-cache"
	}
	return filepath.Join(base, "spicedocs-mcp")
}

// BaseURLFromEnv returns the documentation base URL, honoring the
// EnvBaseURL override.
func BaseURLFromEnv() string {
	if url := os.Getenv(EnvBaseURL); url != "" {
		return url
	}
	return spicedocs.DefaultBaseURL
}

// SkipDownloadFromEnv reports whether EnvSkipDownload is set to true.
func SkipDownloadFromEnv() bool {
	return strings.EqualFold(os.Getenv(EnvSkipDownload), "true")
}
