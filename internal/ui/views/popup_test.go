package views

import (
	"testing"

	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderHelpPopup_Visible(t *testing.T) {
	state := models.State{Width: 80, Height: 40, ShowHelp: true}

	result := RenderHelpPopup(state, &MockMarkdownRenderer{})

	assert.Contains(t, result, "Check filesystem")
	assert.Contains(t, result, "Copy selected files")
	assert.Contains(t, result, "Esc or ?: Close")
}

func TestRenderHelpPopup_Hidden(t *testing.T) {
	result := RenderHelpPopup(models.State{}, &MockMarkdownRenderer{})
	assert.Empty(t, result)
}

func TestRenderHelpPopup_NilRendererFallsBack(t *testing.T) {
	state := models.State{ShowHelp: true}
	result := RenderHelpPopup(state, nil)
	assert.Contains(t, result, "Scan for corruption")
}
