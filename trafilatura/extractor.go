// Package trafilatura extracts article content using go-trafilatura. It is
// the fallback when readability finds no usable content.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/sammelband/sammelband"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sammelband.Extractor at compile time.
var _ sammelband.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sammelband.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sammelband.Errorf(sammelband.EINVALID, "empty HTML input")
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, sammelband.Errorf(sammelband.EINVALID, "invalid page URL: %v", err)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    u,
		IncludeImages:  true,
		IncludeLinks:   true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &sammelband.ExtractResult{
		Title:       result.Metadata.Title,
		Byline:      result.Metadata.Author,
		SiteName:    result.Metadata.Sitename,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
