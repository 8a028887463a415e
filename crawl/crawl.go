// Package crawl implements the scoped BFS crawler that mirrors the
// documentation tree to local disk with atomic publish semantics.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/fs"
)

// DefaultMinFreeBytes is the free disk space required before a crawl
// starts. The full documentation tree is well under this.
const DefaultMinFreeBytes = 100 << 20 // 100 MB

// progressInterval controls how often crawl progress is logged.
const progressInterval = 50

// Ensure Crawler implements spicedocs.Crawler at compile time.
var _ spicedocs.Crawler = (*Crawler)(nil)

// Crawler performs a sequential breadth-first traversal of a
// documentation tree, saving every in-scope page byte-for-byte into a
// temporary directory that is atomically published on success. Discovery
// order is deterministic given deterministic link order in fetched pages.
type Crawler struct {
	Fetcher spicedocs.Fetcher
	Parser  spicedocs.Parser
	Limiter *DomainLimiter
	Logger  *slog.Logger

	// RetryDelays overrides the backoff schedule. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// MinFreeBytes overrides the disk-space preflight threshold.
	// Zero means DefaultMinFreeBytes.
	MinFreeBytes uint64
}

// Crawl downloads every in-scope page reachable from baseURL and
// atomically publishes the mirror at dest. On any failure the temporary
// state is removed and a previous mirror at dest is left untouched.
func (c *Crawler) Crawl(ctx context.Context, baseURL, dest string) (*spicedocs.Manifest, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Reclaim temp dirs left behind by killed crawls before measuring
	// free space.
	if err := fs.RemoveOrphans(dest); err != nil {
		return nil, err
	}

	store := fs.NewStore(dest)
	if err := os.MkdirAll(store.TempDir(), 0o755); err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = store.Abort()
		}
	}()

	if err := c.preflight(store.TempDir()); err != nil {
		return nil, err
	}

	logger.Info("starting crawl", "base_url", baseURL, "dest", dest)

	frontier := NewFrontier()
	frontier.Push(baseURL)

	fileCount := 0
	for {
		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !ShouldDownload(pageURL, baseURL) {
			continue
		}

		body, err := c.fetch(ctx, pageURL, logger)
		if err != nil {
			// Missing pages are an expected outcome on a tree this
			// old; skip and keep crawling.
			if spicedocs.ErrorCode(err) == spicedocs.ENOTFOUND {
				logger.Warn("page not found, skipping", "url", pageURL)
				continue
			}
			return nil, err
		}

		relPath, err := fs.URLToPath(pageURL)
		if err != nil {
			return nil, err
		}
		if err := store.SavePage(relPath, body); err != nil {
			return nil, err
		}

		fileCount++
		if fileCount%progressInterval == 0 {
			logger.Info("crawl progress", "files", fileCount, "queued", frontier.Len())
		}

		c.enqueueLinks(frontier, pageURL, baseURL, body, logger)
	}

	manifest := &spicedocs.Manifest{
		Version:   spicedocs.ManifestVersion,
		Timestamp: time.Now().UTC(),
		BaseURL:   baseURL,
		FileCount: fileCount,
		Completed: true,
	}
	if err := store.WriteManifest(manifest); err != nil {
		return nil, err
	}

	if err := store.Commit(); err != nil {
		return nil, err
	}
	committed = true

	logger.Info("crawl complete", "files", fileCount, "dest", dest)
	return manifest, nil
}

// preflight verifies required free disk space before any network activity.
func (c *Crawler) preflight(tempDir string) error {
	required := c.MinFreeBytes
	if required == 0 {
		required = DefaultMinFreeBytes
	}

	free, err := freeDiskSpace(tempDir)
	if err != nil {
		return err
	}
	if free < required {
		return spicedocs.Errorf(spicedocs.EINVALID,
			"insufficient disk space: %d MB available, %d MB required",
			free>>20, required>>20)
	}
	return nil
}

// fetch retrieves one page under the rate limit and retry policy.
func (c *Crawler) fetch(ctx context.Context, pageURL string, logger *slog.Logger) ([]byte, error) {
	if c.Limiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, spicedocs.Errorf(spicedocs.EINVALID, "invalid URL %q: %v", pageURL, err)
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, logger, delays)
}

// enqueueLinks parses a fetched page and pushes its in-scope links.
// Parse failures degrade to "no links found" rather than aborting the
// crawl.
func (c *Crawler) enqueueLinks(frontier *Frontier, pageURL, baseURL string, body []byte, logger *slog.Logger) {
	content, err := c.Parser.Parse(body)
	if err != nil {
		logger.Warn("failed to parse links", "url", pageURL, "error", err)
		return
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return
	}

	for _, link := range content.Links {
		ref, err := url.Parse(link.Href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		absolute := resolved.String()
		if ShouldDownload(absolute, baseURL) {
			frontier.Push(absolute)
		}
	}
}
