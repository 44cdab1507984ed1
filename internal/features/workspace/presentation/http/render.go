package http

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// markdown renders headings, paragraphs, lists and emphasis. Raw HTML in the
// model output is not passed through.
var markdown = goldmark.New()

// renderMarkdown converts scenario markdown into an HTML fragment.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// exportTemplate is a print-ready A4 document with fixed 10mm margins.
var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4 portrait; margin: 10mm; }
body { font-family: Merriweather, Georgia, serif; background: #fff; color: #292524; padding: 40px; line-height: 1.6; }
h1 { border-bottom: 1px solid #e7e5e4; padding-bottom: 0.5em; }
h2, h3 { page-break-after: avoid; }
ul { padding-left: 1.5em; }
</style>
</head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
`))

type exportPage struct {
	Title string
	Body  template.HTML
}
