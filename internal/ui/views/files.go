package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/dustin/go-humanize"
)

// RenderFiles renders the file list of the mounted disk.
func RenderFiles(s models.State) string {
	style := PaneStyle
	if s.Focus == models.PaneFiles {
		style = FocusedPaneStyle
	}

	title := "Files"
	if s.FileRoot != "" {
		title = fmt.Sprintf("Files in %s", s.FileRoot)
	}
	if len(s.Files) == 0 {
		return style.Render(TitleStyle.Render(title) + "\n" + MutedStyle.Render("Mount a disk to list its files."))
	}

	marked := len(s.MarkedFiles())
	lines := []string{TitleStyle.Render(fmt.Sprintf("%s (%d files, %d selected)", title, len(s.Files), marked))}

	start, end := visibleRange(len(s.Files), s.FileCursor, fileRows(s))
	for i := start; i < end; i++ {
		lines = append(lines, renderFileLine(s, i))
	}
	if end < len(s.Files) {
		lines = append(lines, MutedStyle.Render(fmt.Sprintf("… %d more", len(s.Files)-end)))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderFileLine(s models.State, i int) string {
	f := s.Files[i]
	box := "[ ]"
	if s.Marked[f.Path] {
		box = "[x]"
	}

	name := f.Path
	if s.FileRoot != "" {
		if rel, err := filepath.Rel(s.FileRoot, f.Path); err == nil {
			name = rel
		}
	}
	line := fmt.Sprintf("%s %-10s %s", box, humanize.IBytes(uint64(max(f.Size, 0))), name)

	switch {
	case f.IsCorrupted:
		line = CorruptedStyle.Render(line + "  (corrupted)")
	case f.Status == file.StatusVerified:
		line = VerifiedStyle.Render(line + "  (verified)")
	case f.Status == file.StatusCopied:
		line = VerifiedStyle.Render(line + "  (copied)")
	}

	if i == s.FileCursor && s.Focus == models.PaneFiles {
		return CursorStyle.Render("▸ ") + line
	}
	return "  " + line
}

func fileRows(s models.State) int {
	if s.Height <= 0 {
		return 10
	}
	return max(s.Height/3, 3)
}

// visibleRange returns the half-open window of n rows that keeps cursor visible.
func visibleRange(total, cursor, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	start := cursor - rows/2
	start = max(start, 0)
	start = min(start, total-rows)
	return start, start + rows
}
