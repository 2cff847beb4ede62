package sammelband

import "strings"

// Heading returns the article title, falling back to its URL.
func (a *Article) Heading() string {
	if a.Title != "" {
		return a.Title
	}
	return a.URL
}

// Attribution returns the "by <byline>, <site>" line shown under the heading,
// or "" when the page declared neither.
func (a *Article) Attribution() string {
	switch {
	case a.Byline != "" && a.SiteName != "":
		return "by " + a.Byline + ", " + a.SiteName
	case a.Byline != "":
		return "by " + a.Byline
	default:
		return a.SiteName
	}
}

// JoinMarkdown joins articles into one Markdown document.
// markdown[i] is the converted content of articles[i].
// Articles are separated by horizontal rules.
func JoinMarkdown(articles []*Article, markdown []string) string {
	if len(articles) == 0 {
		return ""
	}

	parts := make([]string, 0, len(articles))
	for i, a := range articles {
		var b strings.Builder
		b.WriteString("# ")
		b.WriteString(a.Heading())
		b.WriteString("\n\n")
		if attr := a.Attribution(); attr != "" {
			b.WriteString("*")
			b.WriteString(attr)
			b.WriteString("*\n\n")
		}
		b.WriteString("[View original article](")
		b.WriteString(a.URL)
		b.WriteString(")")
		if i < len(markdown) && markdown[i] != "" {
			b.WriteString("\n\n")
			b.WriteString(strings.TrimSpace(markdown[i]))
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n---\n\n") + "\n"
}
