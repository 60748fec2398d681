package ui

import (
	"testing"
	"time"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/ui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDisks = []disk.Disk{
	{DevicePath: "/dev/sda", Size: 500 << 30},
	{DevicePath: "/dev/sdb1", Size: 16 << 30, Filesystem: "ext4"},
	{DevicePath: "/dev/sdc1", Size: 8 << 30, Filesystem: "ntfs", Mounted: true, MountPoint: "/mnt/sdc1"},
}

var testFiles = []file.File{
	{Path: "/mnt/sdc1/a.txt", Size: 4},
	{Path: "/mnt/sdc1/b.txt", Size: 2},
	{Path: "/mnt/sdc1/docs/c.pdf", Size: 10},
}

func createTestModel() (BubbleTeaModel, *UIChannels) {
	channels := NewUIChannels()
	return newBubbleTeaModel(channels, &MockMarkdownRenderer{}, mockSpinnerFactory, time.Millisecond), channels
}

func update(t *testing.T, m BubbleTeaModel, msg tea.Msg) (BubbleTeaModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(BubbleTeaModel), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCommand executes the returned tea.Cmd and reads the command it sent.
func runCommand(t *testing.T, cmd tea.Cmd, channels *UIChannels) UICommand {
	t.Helper()
	require.NotNil(t, cmd)
	go cmd()
	select {
	case c := <-channels.CommandChan:
		return c
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for command")
	}
	return UICommand{}
}

func withDisks(t *testing.T, m BubbleTeaModel) BubbleTeaModel {
	t.Helper()
	m, _ = update(t, m, diskListReceivedMsg(testDisks))
	return m
}

func withFiles(t *testing.T, m BubbleTeaModel) BubbleTeaModel {
	t.Helper()
	m = withDisks(t, m)
	m, _ = update(t, m, fileListReceivedMsg(append([]file.File(nil), testFiles...)))
	m, _ = update(t, m, key("tab"))
	return m
}

func TestInit_ReturnsCommands(t *testing.T) {
	model, _ := createTestModel()
	cmd := model.Init()
	assert.NotNil(t, cmd)
}

func TestUpdate_DiskListFillsTable(t *testing.T) {
	model, _ := createTestModel()

	m := withDisks(t, model)

	assert.Len(t, m.state.Disks, 3)
	assert.Len(t, m.state.DiskTable.Rows(), 3)
	d, ok := m.state.SelectedDisk()
	require.True(t, ok)
	assert.Equal(t, "/dev/sda", d.DevicePath)
}

func TestUpdate_DiskListShrinkKeepsCursorInRange(t *testing.T) {
	model, _ := createTestModel()
	m := withDisks(t, model)
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	assert.Equal(t, 2, m.state.DiskTable.Cursor())

	m, _ = update(t, m, diskListReceivedMsg(testDisks[:1]))

	assert.Equal(t, 0, m.state.DiskTable.Cursor())
}

func TestUpdate_DiskKeysSendCommands(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"m", CommandMount},
		{"u", CommandUnmount},
		{"c", CommandCheck},
		{"i", CommandInfo},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			model, channels := createTestModel()
			m := withDisks(t, model)
			m, _ = update(t, m, key("down"))

			m, cmd := update(t, m, key(tt.key))

			c := runCommand(t, cmd, channels)
			assert.Equal(t, tt.want, c.Type)
			assert.Equal(t, "/dev/sdb1", c.Args["device"])
			assert.Equal(t, models.PhaseWorking, m.state.StatusPhase)
		})
	}
}

func TestUpdate_RefreshKey(t *testing.T) {
	model, channels := createTestModel()

	m, cmd := update(t, model, key("r"))

	assert.Equal(t, CommandRefresh, runCommand(t, cmd, channels).Type)
	assert.Equal(t, "Detecting disks", m.state.StatusMessage)
}

func TestUpdate_EnterOnMountedDiskListsFiles(t *testing.T) {
	model, channels := createTestModel()
	m := withDisks(t, model)
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))

	m, cmd := update(t, m, key("enter"))

	c := runCommand(t, cmd, channels)
	assert.Equal(t, CommandList, c.Type)
	assert.Equal(t, "/mnt/sdc1", c.Args["root"])
	assert.Equal(t, models.PaneFiles, m.state.Focus)
	assert.Equal(t, "/mnt/sdc1", m.state.FileRoot)
}

func TestUpdate_EnterOnUnmountedDiskMounts(t *testing.T) {
	model, channels := createTestModel()
	m := withDisks(t, model)

	_, cmd := update(t, m, key("enter"))

	assert.Equal(t, CommandMount, runCommand(t, cmd, channels).Type)
}

func TestUpdate_NoDisksIgnoresDiskKeys(t *testing.T) {
	model, _ := createTestModel()

	_, cmd := update(t, model, key("m"))

	assert.Nil(t, cmd)
}

func TestUpdate_FileListSetsRootFromMountPoint(t *testing.T) {
	model, _ := createTestModel()

	m := withFiles(t, model)

	assert.Equal(t, "/mnt/sdc1", m.state.FileRoot)
	assert.Equal(t, models.PaneFiles, m.state.Focus)
}

func TestUpdate_FileSelection(t *testing.T) {
	model, _ := createTestModel()
	m := withFiles(t, model)

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("space"))
	assert.Equal(t, []file.File{testFiles[1]}, m.state.MarkedFiles())

	m, _ = update(t, m, key("space"))
	assert.Empty(t, m.state.MarkedFiles())

	m, _ = update(t, m, key("a"))
	assert.Len(t, m.state.MarkedFiles(), 3)

	m, _ = update(t, m, key("a"))
	assert.Empty(t, m.state.MarkedFiles())
}

func TestUpdate_FileCursorBounds(t *testing.T) {
	model, _ := createTestModel()
	m := withFiles(t, model)

	m, _ = update(t, m, key("up"))
	assert.Equal(t, 0, m.state.FileCursor)

	for range 10 {
		m, _ = update(t, m, key("j"))
	}
	assert.Equal(t, 2, m.state.FileCursor)
}

func TestUpdate_ScanSendsAllFiles(t *testing.T) {
	model, channels := createTestModel()
	m := withFiles(t, model)

	_, cmd := update(t, m, key("s"))

	c := runCommand(t, cmd, channels)
	assert.Equal(t, CommandScan, c.Type)
	assert.Len(t, c.Files, 3)
}

func TestUpdate_CopyPromptFlow(t *testing.T) {
	model, channels := createTestModel()
	m := withFiles(t, model)

	// Nothing selected: no prompt.
	m, _ = update(t, m, key("y"))
	assert.False(t, m.state.Prompting)

	m, _ = update(t, m, key("space"))
	m, _ = update(t, m, key("y"))
	require.True(t, m.state.Prompting)

	for _, r := range "/srv/out" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "/srv/out", m.state.Input.Value())

	m, cmd := update(t, m, key("enter"))

	c := runCommand(t, cmd, channels)
	assert.Equal(t, CommandCopy, c.Type)
	assert.Equal(t, "/srv/out", c.Args["dest"])
	assert.Equal(t, []file.File{testFiles[0]}, c.Files)
	assert.False(t, m.state.Prompting)
	assert.True(t, m.state.Copying)
}

func TestUpdate_CopyPromptEscCancels(t *testing.T) {
	model, _ := createTestModel()
	m := withFiles(t, model)
	m, _ = update(t, m, key("a"))
	m, _ = update(t, m, key("y"))

	m, cmd := update(t, m, key("esc"))

	assert.False(t, m.state.Prompting)
	assert.Nil(t, cmd)
}

func TestUpdate_ProgressMessages(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, progressReceivedMsg{Value: 0, Message: "starting copy"})
	assert.True(t, m.state.Copying)

	m, _ = update(t, m, progressReceivedMsg{Value: 66, Message: "copied a.txt"})
	assert.Equal(t, 66, m.state.ProgressValue)

	m, _ = update(t, m, progressReceivedMsg{Value: 100, Message: "copy complete"})
	assert.False(t, m.state.Copying)
	assert.Equal(t, "copy complete", m.state.ProgressMessage)
}

func TestUpdate_ErrorStaysUntilNextCommand(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, errorReceivedMsg("FILE_002: no space left on device"))
	m, _ = update(t, m, statusUpdateMsg{Phase: models.PhaseDone, Message: "0 files"})

	assert.Equal(t, models.PhaseError, m.state.StatusPhase)
	assert.Equal(t, "FILE_002: no space left on device", m.state.LastError)

	m, _ = update(t, m, key("r"))
	assert.Equal(t, models.PhaseWorking, m.state.StatusPhase)
	assert.Empty(t, m.state.LastError)
}

func TestUpdate_ErrorStatusWithoutDetail(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, statusUpdateMsg{Phase: models.PhaseError, Message: "copy failed"})

	assert.Equal(t, "copy failed", m.state.LastError)
}

func TestUpdate_DiskStatusAndInfoShareDevice(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, diskInfoReceivedMsg{Device: "/dev/sda", Info: disk.DiskInfo{Model: "WDC"}})
	m, _ = update(t, m, diskStatusReceivedMsg{Device: "/dev/sda", Status: disk.FilesystemStatus{IsConsistent: true}})
	require.NotNil(t, m.state.DiskInfo)
	require.NotNil(t, m.state.DiskStatus)

	m, _ = update(t, m, diskStatusReceivedMsg{Device: "/dev/sdb1", Status: disk.FilesystemStatus{}})
	assert.Nil(t, m.state.DiskInfo)
	assert.Equal(t, "/dev/sdb1", m.state.StatusDevice)
}

func TestUpdate_UnmountClearsFilesOfThatDisk(t *testing.T) {
	model, _ := createTestModel()
	m := withFiles(t, model)
	m, _ = update(t, m, key("tab"))
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))

	m, _ = update(t, m, key("u"))

	assert.Empty(t, m.state.Files)
	assert.Empty(t, m.state.FileRoot)
}

func TestUpdate_HelpPopup(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, key("?"))
	assert.True(t, m.state.ShowHelp)

	// Keys are swallowed while help is open.
	m, cmd := update(t, m, key("r"))
	assert.Nil(t, cmd)

	m, _ = update(t, m, key("esc"))
	assert.False(t, m.state.ShowHelp)
}

func TestTick_DotAnimation(t *testing.T) {
	model, _ := createTestModel()
	model.state.DotCount = 0

	for range 4 {
		model, _ = update(t, model, tickMsg(time.Now()))
	}

	assert.Equal(t, 0, model.state.DotCount)
}

func TestUpdate_WindowSize(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.state.Width)
	assert.Equal(t, 116, m.state.Progress.Width)
}

func TestUpdate_CtrlC_Quits(t *testing.T) {
	model, _ := createTestModel()
	_, cmd := update(t, model, key("ctrl+c"))
	assert.NotNil(t, cmd)
}

func TestMountRootOf(t *testing.T) {
	disks := []disk.Disk{
		{Mounted: true, MountPoint: "/mnt"},
		{Mounted: true, MountPoint: "/mnt/sdc1"},
		{Mounted: false, MountPoint: "/mnt/sdc1/deeper"},
	}
	assert.Equal(t, "/mnt/sdc1", mountRootOf(testFiles, disks))
	assert.Empty(t, mountRootOf(nil, disks))
	assert.Empty(t, mountRootOf([]file.File{{Path: "/home/x"}}, disks))
}
