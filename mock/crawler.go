package mock

import (
	"context"

	"github.com/fwojciec/spicedocs"
)

var _ spicedocs.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of spicedocs.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, baseURL, dest string) (*spicedocs.Manifest, error)
}

func (c *Crawler) Crawl(ctx context.Context, baseURL, dest string) (*spicedocs.Manifest, error) {
	return c.CrawlFn(ctx, baseURL, dest)
}
