// Package readability extracts article content using go-readability,
// a port of Mozilla's Readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/sammelband/sammelband"
)

// Ensure Extractor implements sammelband.Extractor at compile time.
var _ sammelband.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article with its byline and
// site name. Relative links in the content are resolved against pageURL.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sammelband.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sammelband.Errorf(sammelband.EINVALID, "empty HTML input")
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, sammelband.Errorf(sammelband.EINVALID, "invalid page URL: %v", err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	return &sammelband.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		Byline:      strings.TrimSpace(article.Byline),
		SiteName:    strings.TrimSpace(article.SiteName),
		ContentHTML: article.Content,
	}, nil
}
