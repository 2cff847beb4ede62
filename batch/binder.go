// Package batch binds a batch of submitted article URLs into one document.
// It coordinates classification, fetching, extraction, rendering and
// storage of the compiled sammelband.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sammelband/sammelband"
	"github.com/sammelband/sammelband/render"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is how many pages are loaded at once.
const DefaultConcurrency = 3

// Binder turns submitted URLs into a stored document.
type Binder struct {
	Fetcher     sammelband.Fetcher
	Extractor   sammelband.Extractor
	Sanitizer   sammelband.Sanitizer
	Converter   sammelband.Converter
	PDFRenderer sammelband.PDFRenderer
	Documents   sammelband.DocumentStore
	RateLimiter sammelband.DomainLimiter
	Logger      *slog.Logger
	Concurrency int

	// RetryDelays are the waits between fetch attempts. Nil selects
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
}

// Request describes one submission.
type Request struct {
	// ID names the stored document, normally the session ID.
	ID     string
	URLs   []string
	Format sammelband.Format
	Style  sammelband.Style
}

// Result holds the outcome of a bind.
type Result struct {
	// Articles are the successfully extracted articles in submission order.
	Articles []*sammelband.Article

	// Failed lists the well-formed URLs that could not be turned into
	// articles.
	Failed []string

	// BadURLs is the newline-separated report of malformed URLs, empty if
	// none.
	BadURLs string

	// Document is the stored document.
	Document *sammelband.Document
}

// fetchResult holds the outcome of processing a single URL.
type fetchResult struct {
	article *sammelband.Article
	err     error
}

// Bind classifies req.URLs, fetches and extracts every well-formed one,
// renders the articles in req.Format and saves the document under req.ID.
//
// When no URL is well-formed, or none could be fetched, Bind returns an
// EINVALID error together with a Result describing what went wrong.
func (b *Binder) Bind(ctx context.Context, req Request) (*Result, error) {
	logger := b.logger()

	format, err := sammelband.ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}
	if err := (&sammelband.Document{ID: req.ID, Format: format}).Validate(); err != nil {
		return nil, err
	}

	clean, report := sammelband.ClassifyURLs(logger, req.URLs)
	result := &Result{BadURLs: report}
	if len(clean) == 0 {
		return result, sammelband.Errorf(sammelband.EINVALID, "no valid URLs submitted")
	}

	urls := distinct(clean)
	results := b.fetchAll(ctx, urls)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, r := range results {
		if r.err != nil {
			logger.Warn("article failed", "url", urls[i], "err", r.err)
			result.Failed = append(result.Failed, urls[i])
			continue
		}
		result.Articles = append(result.Articles, r.article)
	}
	if len(result.Articles) == 0 {
		return result, sammelband.Errorf(sammelband.EINVALID, "none of the submitted articles could be retrieved")
	}

	content, err := b.render(ctx, result.Articles, format, req.Style.Normalize())
	if err != nil {
		return nil, err
	}

	doc := &sammelband.Document{ID: req.ID, Format: format, Content: content}
	if err := b.Documents.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}
	result.Document = doc

	logger.Info("sammelband bound",
		"id", req.ID,
		"format", format,
		"articles", len(result.Articles),
		"failed", len(result.Failed),
		"bytes", len(content))
	return result, nil
}

// fetchAll processes urls concurrently and returns results in input order.
func (b *Binder) fetchAll(ctx context.Context, urls []string) []fetchResult {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]fetchResult, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			article, err := b.processURL(gctx, u)
			results[i] = fetchResult{article: article, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// processURL turns one URL into a sanitized article.
func (b *Binder) processURL(ctx context.Context, pageURL string) (*sammelband.Article, error) {
	if b.RateLimiter != nil {
		if err := b.RateLimiter.Wait(ctx, hostname(pageURL)); err != nil {
			return nil, err
		}
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, pageURL, b.Fetcher.Fetch, b.logger(), delays)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	extracted, err := b.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	content, err := b.Sanitizer.Sanitize(extracted.ContentHTML, pageURL)
	if err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}

	return &sammelband.Article{
		URL:         pageURL,
		Title:       extracted.Title,
		Byline:      extracted.Byline,
		SiteName:    extracted.SiteName,
		ContentHTML: content,
	}, nil
}

func (b *Binder) render(ctx context.Context, articles []*sammelband.Article, format sammelband.Format, style sammelband.Style) ([]byte, error) {
	switch format {
	case sammelband.FormatMarkdown:
		if b.Converter == nil {
			return nil, sammelband.Errorf(sammelband.EINVALID, "markdown output is not available")
		}
		return render.Markdown(articles, b.Converter)
	case sammelband.FormatPDF:
		if b.PDFRenderer == nil {
			return nil, sammelband.Errorf(sammelband.EINVALID, "pdf output is not available")
		}
		html, err := render.HTML(articles, style)
		if err != nil {
			return nil, err
		}
		pdf, err := b.PDFRenderer.RenderPDF(ctx, string(html))
		if err != nil {
			return nil, fmt.Errorf("rendering pdf: %w", err)
		}
		return pdf, nil
	default:
		return render.HTML(articles, style)
	}
}

func (b *Binder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// distinct returns urls without repeats, keeping first occurrences in order.
func distinct(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
