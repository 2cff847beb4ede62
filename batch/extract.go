package batch

import (
	"strings"

	"github.com/sammelband/sammelband"
)

var _ sammelband.Extractor = FallbackExtractor(nil)

// FallbackExtractor tries each extractor in order and returns the first
// result with non-empty content. Metadata missing from that result is filled
// from later extractors, which are only consulted while something is missing.
type FallbackExtractor []sammelband.Extractor

// Extract implements sammelband.Extractor.
func (f FallbackExtractor) Extract(html, pageURL string) (*sammelband.ExtractResult, error) {
	var found *sammelband.ExtractResult
	var lastErr error
	for _, e := range f {
		if found != nil && found.Title != "" && found.Byline != "" && found.SiteName != "" {
			break
		}
		res, err := e.Extract(html, pageURL)
		if err != nil {
			lastErr = err
			continue
		}
		if found == nil {
			if strings.TrimSpace(res.ContentHTML) == "" {
				continue
			}
			found = res
			continue
		}
		fillMetadata(found, res)
	}

	if found != nil {
		return found, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, sammelband.Errorf(sammelband.EINVALID, "no readable content at %s", pageURL)
}

func fillMetadata(dst, src *sammelband.ExtractResult) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Byline == "" {
		dst.Byline = src.Byline
	}
	if dst.SiteName == "" {
		dst.SiteName = src.SiteName
	}
}
