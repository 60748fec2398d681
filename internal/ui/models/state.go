package models

import (
	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
)

// Pane identifies which list receives navigation keys.
type Pane int

const (
	PaneDisks Pane = iota
	PaneFiles
)

// Status phases shown in the status bar.
const (
	PhaseReady   = "ready"
	PhaseWorking = "working"
	PhaseDone    = "done"
	PhaseError   = "error"
)

// State holds everything the views render.
type State struct {
	Width  int
	Height int
	Focus  Pane

	// Disks
	Disks      []disk.Disk
	DiskTable  table.Model
	DiskStatus *disk.FilesystemStatus
	DiskInfo   *disk.DiskInfo
	// StatusDevice is the device DiskStatus and DiskInfo belong to.
	StatusDevice string

	// Files
	Files      []file.File
	FileCursor int
	Marked     map[string]bool // path -> selected for copy
	FileRoot   string

	// Copy
	Copying         bool
	ProgressValue   int
	ProgressMessage string
	Progress        progress.Model

	// Destination prompt
	Prompting bool
	Input     textinput.Model

	// Status bar
	Spinner       spinner.Model
	StatusPhase   string
	StatusMessage string
	DotCount      int
	LastError     string

	ShowHelp bool
}

// SelectedDisk returns the disk under the table cursor.
func (s State) SelectedDisk() (disk.Disk, bool) {
	i := s.DiskTable.Cursor()
	if i < 0 || i >= len(s.Disks) {
		return disk.Disk{}, false
	}
	return s.Disks[i], true
}

// MarkedFiles returns the selected files in list order.
func (s State) MarkedFiles() []file.File {
	var out []file.File
	for _, f := range s.Files {
		if s.Marked[f.Path] {
			out = append(out, f)
		}
	}
	return out
}
