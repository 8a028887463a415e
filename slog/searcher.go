// Package slog provides logging decorators for service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/spicedocs"
)

// Ensure LoggingSearcher implements spicedocs.Searcher.
var _ spicedocs.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with query timing logs.
type LoggingSearcher struct {
	next   spicedocs.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next spicedocs.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query outcome.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) ([]*spicedocs.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, query, limit)
	if err != nil {
		s.logger.Error("search failed",
			"query", query,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	s.logger.Info("search",
		"query", query,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}

// Ranked delegates to the wrapped searcher.
func (s *LoggingSearcher) Ranked() bool {
	return s.next.Ranked()
}
