package views

import (
	"strings"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/Cyclone1070/salvage/internal/ui/services"
	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"
)

// DiskColumns returns the disk table columns.
func DiskColumns() []table.Column {
	return []table.Column{
		{Title: "Device", Width: 16},
		{Title: "Size", Width: 10},
		{Title: "Filesystem", Width: 10},
		{Title: "Mount point", Width: 22},
		{Title: "Health", Width: 8},
	}
}

// DiskRows converts disks to table rows in the same order.
func DiskRows(disks []disk.Disk) []table.Row {
	rows := make([]table.Row, 0, len(disks))
	for _, d := range disks {
		mp := "-"
		if d.Mounted {
			mp = d.MountPoint
		}
		rows = append(rows, table.Row{
			d.DevicePath,
			humanize.IBytes(uint64(max(d.Size, 0))),
			dash(d.Filesystem),
			mp,
			dash(d.HealthStatus),
		})
	}
	return rows
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderDisks renders the disk table and the details of the disk under the cursor.
func RenderDisks(s models.State, renderer services.MarkdownRenderer) string {
	style := PaneStyle
	if s.Focus == models.PaneDisks {
		style = FocusedPaneStyle
	}

	if len(s.Disks) == 0 {
		return style.Render(TitleStyle.Render("Disks") + "\n" + MutedStyle.Render("No disks detected. Press r to refresh."))
	}

	sections := []string{TitleStyle.Render("Disks"), s.DiskTable.View()}
	if d, ok := s.SelectedDisk(); ok {
		var status *disk.FilesystemStatus
		var info *disk.DiskInfo
		if s.StatusDevice == d.DevicePath {
			status, info = s.DiskStatus, s.DiskInfo
		}
		md := services.RenderDiskPreview(d, status, info)
		rendered, err := services.RenderMarkdown(md, paneWidth(s), renderer)
		if err != nil {
			rendered = md
		}
		sections = append(sections, rendered)
	}
	return style.Render(strings.Join(sections, "\n"))
}

func paneWidth(s models.State) int {
	if s.Width <= 4 {
		return 76
	}
	return s.Width - 4
}
