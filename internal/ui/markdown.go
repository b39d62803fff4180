package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

type rendererKey struct {
	width int
	style string
}

// renderers caches glamour renderers by width and style; building one
// parses the whole style sheet.
var renderers sync.Map

func renderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultWrap
	}
	if style == "" {
		style = "dark"
	}
	key := rendererKey{width, style}
	if r, ok := renderers.Load(key); ok {
		return r.(*glamour.TermRenderer), nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers.Store(key, r)
	return r, nil
}

// RenderMarkdown renders an entry body as terminal rich text using the
// named glamour style. The original content is returned if rendering
// fails.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := renderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
