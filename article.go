package sammelband

import "context"

// Article is the readable content extracted from a single web page.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Byline      string `json:"byline,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	ContentHTML string `json:"-"`
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the article headline.
	Title string

	// Byline is the author line, if the page declares one.
	Byline string

	// SiteName is the publication name, if the page declares one.
	SiteName string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts article content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL and returns the article.
	// pageURL is used to resolve relative links and images.
	Extract(html string, pageURL string) (*ExtractResult, error)
}

// Sanitizer prepares extracted article HTML for embedding in a compiled
// document: relative references are made absolute and active content removed.
type Sanitizer interface {
	Sanitize(html string, pageURL string) (string, error)
}

// Converter converts article HTML to Markdown.
type Converter interface {
	// Convert transforms the content of the article at pageURL into
	// Markdown. Relative links resolve against pageURL. Empty content
	// converts to "".
	Convert(html string, pageURL string) (string, error)
}

// PDFRenderer prints an HTML document to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	// Returns an error if ctx is canceled first.
	Wait(ctx context.Context, domain string) error
}
