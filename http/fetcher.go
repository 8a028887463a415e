// Package http provides an HTTP-based implementation of spicedocs.Fetcher.
// The documentation tree is static HTML, so plain requests are sufficient.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/spicedocs"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// userAgent identifies the crawler to the documentation server.
const userAgent = "spicedocs/" + spicedocs.ManifestVersion + " (+https://github.com/fwojciec/spicedocs)"

// Ensure Fetcher implements spicedocs.Fetcher at compile time.
var _ spicedocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies using HTTP requests. HTTP failures are
// translated into application error codes so the crawler's retry policy
// can dispatch on them: 404 → ENOTFOUND, 5xx and transport errors →
// EUNAVAILABLE, any other non-200 status → EINTERNAL.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher. Redirects are followed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, spicedocs.Errorf(spicedocs.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		// Connection and timeout failures are transient.
		return nil, spicedocs.Errorf(spicedocs.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to read the body.
	case resp.StatusCode == http.StatusNotFound:
		return nil, spicedocs.Errorf(spicedocs.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode >= 500:
		return nil, spicedocs.Errorf(spicedocs.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return nil, spicedocs.Errorf(spicedocs.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, spicedocs.Errorf(spicedocs.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return body, nil
}
