package mock

import (
	"context"

	"github.com/fwojciec/spicedocs"
)

var _ spicedocs.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of spicedocs.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]*spicedocs.SearchResult, error)
	RankedFn func() bool
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]*spicedocs.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

func (s *Searcher) Ranked() bool {
	if s.RankedFn == nil {
		return true
	}
	return s.RankedFn()
}
