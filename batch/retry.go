package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sammelband/sammelband"
)

// FetchFunc is the signature of sammelband.Fetcher.Fetch.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch, retrying after each delay in delays until it
// succeeds. Errors with code EINVALID are permanent and returned at once, as
// are context errors.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= len(delays) || !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		logger.Debug("retrying fetch", "url", url, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return sammelband.ErrorCode(err) != sammelband.EINVALID
}
