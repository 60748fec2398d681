package views

import (
	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/Cyclone1070/salvage/internal/ui/services"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, renderer services.MarkdownRenderer) string {
	if s.ShowHelp {
		return lipgloss.Place(
			s.Width,
			s.Height,
			lipgloss.Center,
			lipgloss.Center,
			RenderHelpPopup(s, renderer),
			lipgloss.WithWhitespaceChars(""),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
		)
	}

	sections := []string{
		RenderDisks(s, renderer),
		RenderFiles(s),
	}
	if p := RenderProgress(s); p != "" {
		sections = append(sections, p)
	}
	if in := RenderInput(s); in != "" {
		sections = append(sections, in)
	}
	sections = append(sections, RenderStatus(s))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
