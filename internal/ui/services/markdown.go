package services

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders Markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders Markdown with glamour, reusing one renderer per width.
type GlamourRenderer struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	options   []glamour.TermRendererOption
}

// NewGlamourRenderer creates a renderer with the terminal's auto-detected style.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{
		renderers: make(map[int]*glamour.TermRenderer),
		options:   []glamour.TermRendererOption{glamour.WithAutoStyle()},
	}
}

// NewGlamourRendererWithStyle creates a renderer with a fixed standard style
// such as "dark", "light" or "notty".
func NewGlamourRendererWithStyle(style string) *GlamourRenderer {
	return &GlamourRenderer{
		renderers: make(map[int]*glamour.TermRenderer),
		options:   []glamour.TermRendererOption{glamour.WithStandardStyle(style)},
	}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	if width < 20 {
		width = 80
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.renderers[width]
	if !ok {
		opts := append(append([]glamour.TermRendererOption{}, g.options...), glamour.WithWordWrap(width))
		var err error
		r, err = glamour.NewTermRenderer(opts...)
		if err != nil {
			return "", err
		}
		g.renderers[width] = r
	}

	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// RenderMarkdown renders content, falling back to the raw text when no
// renderer is configured.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if renderer == nil {
		return content, nil
	}
	return renderer.Render(content, width)
}
