// Package render binds extracted articles into a single styled HTML or
// Markdown document.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sammelband/sammelband"
)

var documentTemplate = template.Must(template.New("sammelband").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
{{- range $i, $a := .Articles}}
<h1{{if $i}} class="break-before"{{end}}>{{$a.Heading}}</h1><br/>
{{- with $a.Attribution}}
<p><i>{{.}}</i></p><br/>
{{- end}}
<p><a href="{{$a.URL}}" target="_blank" rel="noreferrer">View original article</a></p>
{{$a.Content}}<hr/>
{{- end}}
</body>
</html>
`))

type templateArticle struct {
	*sammelband.Article
	Content template.HTML
}

// HTML renders articles into one HTML document styled by style.
// Article content must already be sanitized; it is embedded verbatim.
// Every article after the first starts on a new printed page.
func HTML(articles []*sammelband.Article, style sammelband.Style) ([]byte, error) {
	if len(articles) == 0 {
		return nil, sammelband.Errorf(sammelband.EINVALID, "no articles to render")
	}

	data := struct {
		Title    string
		CSS      template.CSS
		Articles []templateArticle
	}{
		Title: "Sammelband",
		CSS:   stylesheet(style),
	}
	if len(articles) == 1 {
		data.Title = articles[0].Heading()
	}
	for _, a := range articles {
		data.Articles = append(data.Articles, templateArticle{
			Article: a,
			Content: template.HTML(a.ContentHTML),
		})
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Markdown converts each article's content with conv and joins the results
// with sammelband.JoinMarkdown.
func Markdown(articles []*sammelband.Article, conv sammelband.Converter) ([]byte, error) {
	if len(articles) == 0 {
		return nil, sammelband.Errorf(sammelband.EINVALID, "no articles to render")
	}

	bodies := make([]string, len(articles))
	for i, a := range articles {
		md, err := conv.Convert(a.ContentHTML, a.URL)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", a.URL, err)
		}
		bodies[i] = md
	}

	return []byte(sammelband.JoinMarkdown(articles, bodies)), nil
}
