// Package htmltomarkdown renders article HTML as Markdown for the "md"
// document format.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/sammelband/sammelband"
)

var _ sammelband.Converter = (*Converter)(nil)

// Converter turns sanitized article content into a Markdown section of a
// compiled sammelband. Each article in the document is introduced by its
// own level-one heading, so headings inside the article are pushed down one
// level.
type Converter struct {
	conv *converter.Converter
}

// NewConverter returns a Converter producing CommonMark with tables and
// strikethrough.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
				strikethrough.NewStrikethroughPlugin(),
			),
		),
	}
}

// Convert renders html, taken from the article at pageURL, as Markdown.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	md, err := c.conv.ConvertString(html, converter.WithDomain(pageURL))
	if err != nil {
		return "", err
	}
	return demoteHeadings(md), nil
}

// demoteHeadings adds one level to every ATX heading outside fenced code
// blocks. Level six headings stay at six.
func demoteHeadings(md string) string {
	lines := strings.Split(md, "\n")
	var fence string
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fence = trimmed[:3]
			continue
		}
		if level := headingLevel(trimmed); level > 0 && level < 6 {
			lines[i] = "#" + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// headingLevel returns the level of an ATX heading line, or 0.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0
	}
	return n
}
