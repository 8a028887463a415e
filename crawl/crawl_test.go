package crawl_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/crawl"
	"github.com/fwojciec/spicedocs/fs"
	"github.com/fwojciec/spicedocs/goquery"
	spicehttp "github.com/fwojciec/spicedocs/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docsHandler serves a small documentation tree under /docs/.
func docsHandler() http.Handler {
	pages := map[string]string{
		"/docs/": `<html><head><title>Index</title></head><body>
			<a href="a.html">A</a>
			<a href="sub/">Subdir</a>
			<a href="missing.html">Gone</a>
			<a href="https://elsewhere.example.com/x.html">External</a>
			<a href="../outside.html">Outside</a>
			<a href="diagram.png">Asset</a>
			<a href="mailto:docs@example.com">Mail</a>
		</body></html>`,
		"/docs/a.html": `<html><head><title>A</title></head><body>
			<a href="b.html#section">B</a>
			<a href="./">Home</a>
		</body></html>`,
		"/docs/b.html": `<html><head><title>B</title></head><body>No links.</body></html>`,
		"/docs/sub/": `<html><head><title>Sub</title></head><body>
			<a href="nested.html">Nested</a>
		</body></html>`,
		"/docs/sub/nested.html": `<html><head><title>Nested</title></head><body>
			<a href="../a.html">Back</a>
		</body></html>`,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	})
}

func newCrawler(t *testing.T) *crawl.Crawler {
	t.Helper()
	return &crawl.Crawler{
		Fetcher:      spicehttp.NewFetcher(),
		Parser:       goquery.NewParser(),
		RetryDelays:  noDelays(),
		MinFreeBytes: 1,
	}
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("mirrors every in-scope page and writes a manifest", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(docsHandler())
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "cache")
		baseURL := server.URL + "/docs/"

		manifest, err := newCrawler(t).Crawl(context.Background(), baseURL, dest)
		require.NoError(t, err)

		assert.Equal(t, spicedocs.ManifestVersion, manifest.Version)
		assert.Equal(t, baseURL, manifest.BaseURL)
		assert.Equal(t, 5, manifest.FileCount)
		assert.True(t, manifest.Completed)
		assert.WithinDuration(t, time.Now().UTC(), manifest.Timestamp, time.Minute)

		root := filepath.Join(dest, spicedocs.HostSegment)
		for _, rel := range []string{
			"docs/index.html",
			"docs/a.html",
			"docs/b.html",
			"docs/sub/index.html",
			"docs/sub/nested.html",
		} {
			_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
			assert.NoError(t, err, "expected %s in mirror", rel)
		}

		// Out-of-scope targets were never materialized.
		_, err = os.Stat(filepath.Join(root, "outside.html"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(root, "docs", "diagram.png"))
		assert.True(t, os.IsNotExist(err))

		// The published manifest round-trips.
		m, err := fs.ReadManifest(filepath.Join(dest, spicedocs.ManifestFilename))
		require.NoError(t, err)
		assert.Equal(t, 5, m.FileCount)
	})

	t.Run("saves page bodies byte-identical", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(docsHandler())
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "cache")
		_, err := newCrawler(t).Crawl(context.Background(), server.URL+"/docs/", dest)
		require.NoError(t, err)

		saved, err := os.ReadFile(filepath.Join(dest, spicedocs.HostSegment, "docs", "b.html"))
		require.NoError(t, err)
		assert.Equal(t, `<html><head><title>B</title></head><body>No links.</body></html>`, string(saved))
	})

	t.Run("recovers from transient 5xx within the retry cap", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) <= 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`<html><head><title>Flaky</title></head><body>ok</body></html>`))
		}))
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "cache")
		manifest, err := newCrawler(t).Crawl(context.Background(), server.URL+"/docs/", dest)
		require.NoError(t, err)
		assert.Equal(t, 1, manifest.FileCount)
	})

	t.Run("persistent 5xx is fatal and leaves no partial mirror", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		base := t.TempDir()
		dest := filepath.Join(base, "cache")

		_, err := newCrawler(t).Crawl(context.Background(), server.URL+"/docs/", dest)
		require.Error(t, err)
		assert.Equal(t, spicedocs.EUNAVAILABLE, spicedocs.ErrorCode(err))

		// Destination absent, temp state gone.
		_, err = os.Stat(dest)
		assert.True(t, os.IsNotExist(err))
		entries, err := os.ReadDir(base)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("mid-crawl failure leaves a prior mirror untouched", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/docs/":
				_, _ = w.Write([]byte(`<html><body><a href="forbidden.html">F</a></body></html>`))
			default:
				w.WriteHeader(http.StatusForbidden)
			}
		}))
		defer server.Close()

		base := t.TempDir()
		dest := filepath.Join(base, "cache")
		require.NoError(t, os.MkdirAll(dest, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "previous.html"), []byte("previous"), 0o644))

		_, err := newCrawler(t).Crawl(context.Background(), server.URL+"/docs/", dest)
		require.Error(t, err)

		data, err := os.ReadFile(filepath.Join(dest, "previous.html"))
		require.NoError(t, err)
		assert.Equal(t, "previous", string(data))

		entries, err := os.ReadDir(base)
		require.NoError(t, err)
		assert.Len(t, entries, 1) // only the untouched prior mirror
	})

	t.Run("404 pages are skipped without failing the crawl", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(docsHandler())
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "cache")
		manifest, err := newCrawler(t).Crawl(context.Background(), server.URL+"/docs/", dest)
		require.NoError(t, err)

		// missing.html was linked but 404s; it is not counted or saved.
		assert.Equal(t, 5, manifest.FileCount)
		_, err = os.Stat(filepath.Join(dest, spicedocs.HostSegment, "docs", "missing.html"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("insufficient disk space fails before any network activity", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		crawler := newCrawler(t)
		crawler.MinFreeBytes = 1 << 62 // more than any filesystem has

		dest := filepath.Join(t.TempDir(), "cache")
		_, err := crawler.Crawl(context.Background(), server.URL+"/docs/", dest)
		require.Error(t, err)
		assert.Equal(t, spicedocs.EINVALID, spicedocs.ErrorCode(err))
		assert.Zero(t, hits.Load())
	})

	t.Run("removes orphaned temp dirs from killed crawls", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(docsHandler())
		defer server.Close()

		base := t.TempDir()
		dest := filepath.Join(base, "cache")

		// Simulate a killed crawl's leftovers.
		orphan := fs.NewStore(dest)
		require.NoError(t, orphan.SavePage("docs/half.html", []byte("half")))

		_, err := newCrawler(t).Crawl(context.Background(), server.URL+"/docs/", dest)
		require.NoError(t, err)

		_, err = os.Stat(orphan.TempDir())
		assert.True(t, os.IsNotExist(err))
	})
}

func TestCrawler_Crawl_RespectsCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(docsHandler())
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "cache")
	_, err := newCrawler(t).Crawl(ctx, server.URL+"/docs/", dest)
	require.ErrorIs(t, err, context.Canceled)
}
