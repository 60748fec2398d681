package views

import (
	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
)

// MockMarkdownRenderer returns content unchanged.
type MockMarkdownRenderer struct{}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	return content, nil
}

func createTestSpinner() spinner.Model {
	return spinner.New()
}

func createTestTextInput(value string) textinput.Model {
	ti := textinput.New()
	ti.SetValue(value)
	return ti
}

func createTestTable(disks []disk.Disk) table.Model {
	return table.New(
		table.WithColumns(DiskColumns()),
		table.WithRows(DiskRows(disks)),
		table.WithHeight(5),
	)
}

func createTestProgress() progress.Model {
	return progress.New(progress.WithoutPercentage(), progress.WithWidth(20))
}

var testDisks = []disk.Disk{
	{DevicePath: "/dev/sda", Size: 500 << 30, HealthStatus: "PASSED"},
	{DevicePath: "/dev/sdb1", Size: 16 << 30, Filesystem: "ext4", Mounted: true, MountPoint: "/mnt/sdb1"},
}
