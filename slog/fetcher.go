// Package slog decorates sammelband services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sammelband/sammelband"
)

// Ensure the logging wrappers implement their interfaces.
var (
	_ sammelband.Fetcher     = (*LoggingFetcher)(nil)
	_ sammelband.Extractor   = (*LoggingExtractor)(nil)
	_ sammelband.PDFRenderer = (*LoggingPDFRenderer)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   sammelband.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sammelband.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the request and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   sammelband.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sammelband.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs what was found and delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html, pageURL string) (res *sammelband.ExtractResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", pageURL,
			"html_bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		}
		if res != nil {
			attrs = append(attrs, "title", res.Title, "content_bytes", len(res.ContentHTML))
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}

// LoggingPDFRenderer wraps a PDFRenderer with logging.
type LoggingPDFRenderer struct {
	next   sammelband.PDFRenderer
	logger *slog.Logger
}

// NewLoggingPDFRenderer creates a new LoggingPDFRenderer.
func NewLoggingPDFRenderer(next sammelband.PDFRenderer, logger *slog.Logger) *LoggingPDFRenderer {
	return &LoggingPDFRenderer{next: next, logger: logger}
}

// RenderPDF logs the input and output size and delegates to the wrapped renderer.
func (r *LoggingPDFRenderer) RenderPDF(ctx context.Context, html string) (pdf []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render pdf",
			"html_bytes", len(html),
			"pdf_bytes", len(pdf),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderPDF(ctx, html)
}
