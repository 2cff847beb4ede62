package sammelband

import "strings"

// Color is the color scheme of a compiled document.
type Color string

// Color constants.
const (
	ColorLight Color = "light"
	ColorDark  Color = "dark"
)

// Font is the typeface family of a compiled document.
type Font string

// Font constants.
const (
	FontSerif     Font = "serif"
	FontSansSerif Font = "sansSerif"
)

// Style selects the look of a compiled document.
type Style struct {
	Color Color `json:"color"`
	Font  Font  `json:"font"`
}

// Normalize returns the style with unknown values replaced by the defaults
// (light, serif).
func (s Style) Normalize() Style {
	if s.Color != ColorDark {
		s.Color = ColorLight
	}
	if s.Font != FontSansSerif {
		s.Font = FontSerif
	}
	return s
}

// Format is the file format of a compiled document.
type Format string

// Format constants.
const (
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
)

// Formats lists every supported format.
var Formats = []Format{FormatHTML, FormatPDF, FormatMarkdown}

// ParseFormat parses a format name. An empty name selects HTML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatPDF, FormatMarkdown:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", Errorf(EINVALID, "unsupported format %q", s)
	}
}

// ContentType returns the MIME type of documents in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}
