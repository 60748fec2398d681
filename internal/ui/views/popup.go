package views

import (
	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/Cyclone1070/salvage/internal/ui/services"
	"github.com/charmbracelet/lipgloss"
)

// HelpText is the Markdown shown in the help popup.
const HelpText = `# salvage

## Disks

| Key | Action |
|---|---|
| ↑/↓ | Move |
| enter | Mount and list files |
| m | Mount |
| u | Unmount |
| c | Check filesystem |
| i | Disk and SMART info |
| r | Refresh |

## Files

| Key | Action |
|---|---|
| space | Select file |
| a | Select all or none |
| s | Scan for corruption |
| y | Copy selected files |

tab switches panes, ? toggles this help, q quits.
`

// RenderHelpPopup renders the key reference.
func RenderHelpPopup(s models.State, renderer services.MarkdownRenderer) string {
	if !s.ShowHelp {
		return ""
	}

	width := min(paneWidth(s), 64)
	content, err := services.RenderMarkdown(HelpText, width, renderer)
	if err != nil {
		content = HelpText
	}
	content += "\n" + lipgloss.NewStyle().Faint(true).Render("Esc or ?: Close")
	return PopupBoxStyle.Render(content)
}
