package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/spicedocs"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry attempts to fetch a URL with exponential backoff retry
// logic. It retries up to 3 times (4 total attempts) with delays of 1s,
// 2s, 4s.
//
// Only EUNAVAILABLE failures (5xx responses, connection errors, timeouts)
// are retried. ENOTFOUND is returned after a single attempt so the caller
// can skip the page, and any other failure is immediately fatal.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger) ([]byte, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable
// delays. This is useful for testing without waiting for real delays.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) ([]byte, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if spicedocs.ErrorCode(err) != spicedocs.EUNAVAILABLE {
			return nil, err
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("transient fetch failure, retrying",
				"url", url,
				"attempt", attempt+2,
				"delay", delays[attempt],
				"error", spicedocs.ErrorMessage(err),
			)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
