package render

import (
	"html/template"

	"github.com/sammelband/sammelband"
)

const baseCSS = `
html { font-size: 18px; line-height: 1.6; }
body { max-width: 42rem; margin: 2rem auto; padding: 0 1rem; }
h1 { line-height: 1.2; margin-bottom: 0.25rem; }
img, video, figure { max-width: 100%; height: auto; }
pre { white-space: pre-wrap; overflow-x: auto; padding: 0.75rem; }
blockquote { margin-left: 0; padding-left: 1rem; border-left: 3px solid currentColor; opacity: 0.85; }
table { border-collapse: collapse; }
td, th { border: 1px solid currentColor; padding: 0.25rem 0.5rem; }
hr { margin: 3rem 0; }
.break-before { break-before: page; page-break-before: always; }
@media print {
  body { max-width: none; margin: 0; }
  a[href]::after { content: none; }
}
`

const serifCSS = `
body { font-family: Georgia, "Times New Roman", Times, serif; }
`

const sansSerifCSS = `
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; }
`

const lightCSS = `
body { background: #fdfdfb; color: #1d1d1b; }
a { color: #1f5fa8; }
pre, code { background: #f0efe9; }
`

const darkCSS = `
body { background: #1b1c1e; color: #dcdcd6; }
a { color: #8cb8ef; }
pre, code { background: #2a2b2e; }
`

// stylesheet assembles the CSS for style. Unknown values fall back to light
// and serif.
func stylesheet(style sammelband.Style) template.CSS {
	style = style.Normalize()

	css := baseCSS
	if style.Font == sammelband.FontSansSerif {
		css += sansSerifCSS
	} else {
		css += serifCSS
	}
	if style.Color == sammelband.ColorDark {
		css += darkCSS
	} else {
		css += lightCSS
	}
	return template.CSS(css)
}
