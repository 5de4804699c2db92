package web

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	mdRenderer = goldmark.New()
	sanitizer  = bluemonday.UGCPolicy()
)

// renderMarkdown converts note content to sanitized HTML. Notes are
// user input, so the rendered output passes through an HTML policy
// before being marked safe for templates.
func renderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(content), &buf); err != nil {
		slog.Warn("markdown render failed", "error", err)
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
