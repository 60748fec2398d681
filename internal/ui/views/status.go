package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/salvage/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	switch s.StatusPhase {
	case models.PhaseWorking:
		dots := strings.Repeat(".", s.DotCount)
		return StatusWorkingStyle.Render(fmt.Sprintf("%s %s%s", s.Spinner.View(), s.StatusMessage, dots))
	case models.PhaseDone:
		return StatusDoneStyle.Render(fmt.Sprintf("✔ %s", s.StatusMessage))
	case models.PhaseError:
		return StatusErrorStyle.Render(fmt.Sprintf("✖ %s", s.LastError))
	}

	if s.StatusMessage != "" {
		return StatusDefaultStyle.Render(s.StatusMessage)
	}
	return StatusDefaultStyle.Render("Ready  (? for help)")
}

// RenderProgress renders the copy progress bar while a copy runs.
func RenderProgress(s models.State) string {
	if !s.Copying {
		return ""
	}
	bar := s.Progress.ViewAs(float64(s.ProgressValue) / 100)
	return fmt.Sprintf("%s\n%s", bar, MutedStyle.Render(s.ProgressMessage))
}
