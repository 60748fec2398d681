package views

import (
	"fmt"

	"github.com/Cyclone1070/salvage/internal/ui/models"
)

// RenderInput renders the copy destination prompt.
func RenderInput(s models.State) string {
	if !s.Prompting {
		return ""
	}
	header := fmt.Sprintf("Copy %d files to:", len(s.MarkedFiles()))
	return InputStyle.Render(header + "\n" + s.Input.View())
}
