package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("39")
	ColorSuccess = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	FocusedPaneStyle = PaneStyle.BorderForeground(ColorPrimary)

	CursorStyle    = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	CorruptedStyle = lipgloss.NewStyle().Foreground(ColorError)
	VerifiedStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	MutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	PopupBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	StatusDefaultStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusWorkingStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatusDoneStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
)
