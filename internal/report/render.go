package report

import (
	"github.com/charmbracelet/glamour"
)

// Render formats Markdown for the terminal. An empty style picks one from the
// terminal background; "notty" produces plain text suitable for pipes.
func Render(markdown string, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
