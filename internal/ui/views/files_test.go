package views

import (
	"fmt"
	"testing"

	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderFiles_Empty(t *testing.T) {
	result := RenderFiles(models.State{})
	assert.Contains(t, result, "Mount a disk")
}

func TestRenderFiles_MarksAndStatuses(t *testing.T) {
	state := models.State{
		Focus:    models.PaneFiles,
		FileRoot: "/mnt/sdb1",
		Files: []file.File{
			{Path: "/mnt/sdb1/a.txt", Size: 4},
			{Path: "/mnt/sdb1/photo.png", Size: 10, IsCorrupted: true, Status: file.StatusCorrupted},
			{Path: "/mnt/sdb1/docs/b.txt", Size: 2, Status: file.StatusVerified},
		},
		Marked: map[string]bool{"/mnt/sdb1/a.txt": true},
	}

	result := RenderFiles(state)

	assert.Contains(t, result, "3 files, 1 selected")
	assert.Contains(t, result, "▸ [x]")
	assert.Contains(t, result, "photo.png  (corrupted)")
	assert.Contains(t, result, "docs/b.txt  (verified)")
}

func TestRenderFiles_WindowFollowsCursor(t *testing.T) {
	var files []file.File
	for i := range 50 {
		files = append(files, file.File{Path: fmt.Sprintf("/r/f%02d", i)})
	}
	state := models.State{Height: 30, Files: files, FileCursor: 45, FileRoot: "/r", Focus: models.PaneFiles}

	result := RenderFiles(state)

	assert.Contains(t, result, "f45")
	assert.NotContains(t, result, "f00")
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		total, cursor, rows int
		start, end          int
	}{
		{5, 0, 10, 0, 5},
		{50, 0, 10, 0, 10},
		{50, 25, 10, 20, 30},
		{50, 49, 10, 40, 50},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.total, tt.cursor, tt.rows)
		assert.Equal(t, tt.start, start, "%+v", tt)
		assert.Equal(t, tt.end, end, "%+v", tt)
	}
}
