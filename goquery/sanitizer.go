// Package goquery cleans extracted article HTML before it is bound into a
// document. goquery rewrites references against the article's page and a
// bluemonday policy decides what markup survives.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sammelband/sammelband"
)

// Ensure Sanitizer implements sammelband.Sanitizer at compile time.
var _ sammelband.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips active content from article HTML and rewrites relative
// references so the article still works outside its original site.
// It is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: articlePolicy()}
}

// articlePolicy allows user generated content markup plus the responsive
// image attributes articles commonly carry. Only http, https and mailto
// links survive. Links leaving the document open in a new tab and send no
// referrer.
func articlePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowDataURIImages()
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowElements("picture")
	p.AllowAttrs("srcset").OnElements("img", "source")
	p.AllowAttrs("media", "type").OnElements("source")
	return p
}

// Sanitize returns html with links and images resolved against pageURL and
// everything the article policy does not allow removed.
func (s *Sanitizer) Sanitize(html string, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", sammelband.Errorf(sammelband.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", sammelband.Errorf(sammelband.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("a[href], area[href]").Each(func(_ int, sel *goquery.Selection) {
		resolveAttr(sel, "href", base)
	})
	doc.Find("img[src], source[src]").Each(func(_ int, sel *goquery.Selection) {
		resolveAttr(sel, "src", base)
	})
	doc.Find("img[srcset], source[srcset]").Each(func(_ int, sel *goquery.Selection) {
		srcset, _ := sel.Attr("srcset")
		sel.SetAttr("srcset", resolveSrcset(base, srcset))
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s.policy.Sanitize(body)), nil
}

// resolveAttr rewrites the URL held in attr against base. References that do
// not parse as URLs are dropped.
func resolveAttr(sel *goquery.Selection, attr string, base *url.URL) {
	ref, _ := sel.Attr(attr)
	resolved, ok := resolveURL(base, ref)
	if !ok {
		sel.RemoveAttr(attr)
		return
	}
	sel.SetAttr(attr, resolved)
}

// resolveURL resolves a possibly relative reference against base. In-page
// anchors and data URIs come back unchanged.
func resolveURL(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(strings.ToLower(ref), "data:") {
		return ref, true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

// resolveSrcset resolves every candidate URL in a srcset attribute,
// keeping the width or density descriptors. Unparseable candidates are
// dropped.
func resolveSrcset(base *url.URL, srcset string) string {
	var out []string
	for _, c := range strings.Split(srcset, ",") {
		fields := strings.Fields(c)
		if len(fields) == 0 {
			continue
		}
		resolved, ok := resolveURL(base, fields[0])
		if !ok {
			continue
		}
		fields[0] = resolved
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, ", ")
}
