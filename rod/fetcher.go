package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/sammelband/sammelband"
)

// DefaultFetchTimeout bounds a single page navigation and render.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements sammelband.Fetcher at compile time.
var _ sammelband.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// NewFetcher creates a Fetcher that opens pages in manager's browser.
// The manager stays owned by the caller.
func NewFetcher(manager *BrowserManager, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		manager:      manager,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.manager.Closed() {
		return "", sammelband.Errorf(sammelband.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", contextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextErr(ctx, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextErr(ctx, err)
	}

	return html, nil
}

// Close is a no-op; the browser belongs to the BrowserManager.
func (f *Fetcher) Close() error {
	return nil
}

// contextErr prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
