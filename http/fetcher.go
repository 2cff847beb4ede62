package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/sammelband/sammelband"
)

// DefaultFetchTimeout is the default timeout for HTTP page loads.
const DefaultFetchTimeout = 30 * time.Second

// MaxPageBytes bounds the size of a fetched page.
const MaxPageBytes = 10 << 20

// UserAgent identifies page loads made without a browser.
const UserAgent = "Mozilla/5.0 (compatible; Sammelband/1.0; +https://github.com/sammelband/sammelband)"

// Ensure Fetcher implements sammelband.Fetcher at compile time.
var _ sammelband.Fetcher = (*Fetcher)(nil)

// Fetcher loads article pages with plain HTTP requests. Unlike rod.Fetcher
// it does not execute JavaScript, so pages rendered client side come back
// empty; it serves deployments without a browser.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the timeout for each page load.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch returns the HTML of the page at url. Client errors (4xx) and
// non-HTML responses are reported as EINVALID since retrying cannot help.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sammelband.Errorf(sammelband.EINVALID, "invalid url %q", url)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return "", sammelband.Errorf(sammelband.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil && mediaType != "text/html" && mediaType != "application/xhtml+xml" {
			return "", sammelband.Errorf(sammelband.EINVALID, "%s is not an HTML page (%s)", url, mediaType)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > MaxPageBytes {
		return "", sammelband.Errorf(sammelband.EINVALID, "%s is larger than %d bytes", url, MaxPageBytes)
	}
	return string(body), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}
