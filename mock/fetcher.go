package mock

import (
	"context"

	"github.com/sammelband/sammelband"
)

// Compile-time interface verification.
var (
	_ sammelband.Fetcher       = (*Fetcher)(nil)
	_ sammelband.Extractor     = (*Extractor)(nil)
	_ sammelband.Sanitizer     = (*Sanitizer)(nil)
	_ sammelband.Converter     = (*Converter)(nil)
	_ sammelband.PDFRenderer   = (*PDFRenderer)(nil)
	_ sammelband.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of sammelband.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Extractor is a mock implementation of sammelband.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*sammelband.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*sammelband.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

// Sanitizer is a mock implementation of sammelband.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html, pageURL string) (string, error)
}

func (s *Sanitizer) Sanitize(html, pageURL string) (string, error) {
	return s.SanitizeFn(html, pageURL)
}

// Converter is a mock implementation of sammelband.Converter.
type Converter struct {
	ConvertFn func(html, pageURL string) (string, error)
}

func (c *Converter) Convert(html, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}

// PDFRenderer is a mock implementation of sammelband.PDFRenderer.
type PDFRenderer struct {
	RenderPDFFn func(ctx context.Context, html string) ([]byte, error)
}

func (r *PDFRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return r.RenderPDFFn(ctx, html)
}

// DomainLimiter is a mock implementation of sammelband.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
