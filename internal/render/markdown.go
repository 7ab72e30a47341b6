package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// newMarkdown returns the converter used for entry descriptions. Raw HTML
// in content is dropped, not passed through.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
	)
}

// emptyDescription keeps the card structure when an entry has no
// description.
const emptyDescription template.HTML = "<p></p>"

// markdownHTML converts a description to HTML. Blank input yields an empty
// paragraph.
func markdownHTML(md goldmark.Markdown, src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return emptyDescription, nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
