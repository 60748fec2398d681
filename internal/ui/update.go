package ui

import (
	"strings"
	"time"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/Cyclone1070/salvage/internal/ui/services"
	"github.com/Cyclone1070/salvage/internal/ui/views"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	renderer     services.MarkdownRenderer
	tickInterval time.Duration

	// Channels for communication with the session loop
	diskListChan   <-chan []disk.Disk
	fileListChan   <-chan []file.File
	progressChan   <-chan progressMsg
	errorChan      <-chan string
	diskStatusChan <-chan diskStatusMsg
	diskInfoChan   <-chan diskInfoMsg
	statusChan     <-chan statusMsg

	// UI -> Session
	commandChan chan<- UICommand

	// Ready signal
	readyChan chan<- struct{}
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.renderer)
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	channels *UIChannels,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	tickInterval time.Duration,
) BubbleTeaModel {
	if tickInterval <= 0 {
		tickInterval = 300 * time.Millisecond
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/destination"

	tbl := table.New(
		table.WithColumns(views.DiskColumns()),
		table.WithFocused(true),
		table.WithHeight(6),
	)

	return BubbleTeaModel{
		state: models.State{
			Focus:       models.PaneDisks,
			DiskTable:   tbl,
			Marked:      map[string]bool{},
			Progress:    progress.New(progress.WithDefaultGradient()),
			Input:       ti,
			Spinner:     spinnerFactory(),
			StatusPhase: models.PhaseReady,
		},
		renderer:       renderer,
		tickInterval:   tickInterval,
		diskListChan:   channels.DiskListChan,
		fileListChan:   channels.FileListChan,
		progressChan:   channels.ProgressChan,
		errorChan:      channels.ErrorChan,
		diskStatusChan: channels.DiskStatusChan,
		diskInfoChan:   channels.DiskInfoChan,
		statusChan:     channels.StatusChan,
		commandChan:    channels.CommandChan,
		readyChan:      channels.ReadyChan,
	}
}

// Internal messages
type tickMsg time.Time
type diskListReceivedMsg []disk.Disk
type fileListReceivedMsg []file.File
type progressReceivedMsg progressMsg
type errorReceivedMsg string
type diskStatusReceivedMsg diskStatusMsg
type diskInfoReceivedMsg diskInfoMsg
type statusUpdateMsg statusMsg

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	// Signal that UI is ready
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		m.state.Spinner.Tick,
		tick(m.tickInterval),
		listen(m.diskListChan, func(v []disk.Disk) tea.Msg { return diskListReceivedMsg(v) }),
		listen(m.fileListChan, func(v []file.File) tea.Msg { return fileListReceivedMsg(v) }),
		listen(m.progressChan, func(v progressMsg) tea.Msg { return progressReceivedMsg(v) }),
		listen(m.errorChan, func(v string) tea.Msg { return errorReceivedMsg(v) }),
		listen(m.diskStatusChan, func(v diskStatusMsg) tea.Msg { return diskStatusReceivedMsg(v) }),
		listen(m.diskInfoChan, func(v diskInfoMsg) tea.Msg { return diskInfoReceivedMsg(v) }),
		listen(m.statusChan, func(v statusMsg) tea.Msg { return statusUpdateMsg(v) }),
		m.send(UICommand{Type: CommandRefresh}),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Progress.Width = max(msg.Width-4, 10)
		m.state.DiskTable.SetWidth(max(msg.Width-4, 20))

	case tickMsg:
		m.state.DotCount = (m.state.DotCount + 1) % 4
		return m, tick(m.tickInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case diskListReceivedMsg:
		m.setDisks([]disk.Disk(msg))
		return m, listen(m.diskListChan, func(v []disk.Disk) tea.Msg { return diskListReceivedMsg(v) })

	case fileListReceivedMsg:
		m.setFiles([]file.File(msg))
		return m, listen(m.fileListChan, func(v []file.File) tea.Msg { return fileListReceivedMsg(v) })

	case progressReceivedMsg:
		m.state.Copying = msg.Value < 100
		m.state.ProgressValue = msg.Value
		m.state.ProgressMessage = msg.Message
		return m, listen(m.progressChan, func(v progressMsg) tea.Msg { return progressReceivedMsg(v) })

	case errorReceivedMsg:
		m.state.StatusPhase = models.PhaseError
		m.state.LastError = string(msg)
		m.state.Copying = false
		return m, listen(m.errorChan, func(v string) tea.Msg { return errorReceivedMsg(v) })

	case diskStatusReceivedMsg:
		m.showDetails(msg.Device)
		status := msg.Status
		m.state.DiskStatus = &status
		return m, listen(m.diskStatusChan, func(v diskStatusMsg) tea.Msg { return diskStatusReceivedMsg(v) })

	case diskInfoReceivedMsg:
		m.showDetails(msg.Device)
		info := msg.Info
		m.state.DiskInfo = &info
		return m, listen(m.diskInfoChan, func(v diskInfoMsg) tea.Msg { return diskInfoReceivedMsg(v) })

	case statusUpdateMsg:
		// An error stays visible until the next command starts.
		if !(m.state.StatusPhase == models.PhaseError && msg.Phase == models.PhaseDone) {
			m.state.StatusPhase = msg.Phase
			m.state.StatusMessage = msg.Message
		}
		if msg.Phase == models.PhaseError && m.state.LastError == "" {
			m.state.LastError = msg.Message
		}
		return m, listen(m.statusChan, func(v statusMsg) tea.Msg { return statusUpdateMsg(v) })
	}

	return m, nil
}

// showDetails switches the details panel to device, dropping results for other disks.
func (m *BubbleTeaModel) showDetails(device string) {
	if m.state.StatusDevice != device {
		m.state.StatusDevice = device
		m.state.DiskStatus = nil
		m.state.DiskInfo = nil
	}
}

func (m *BubbleTeaModel) setDisks(disks []disk.Disk) {
	cursor := m.state.DiskTable.Cursor()
	m.state.Disks = disks
	m.state.DiskTable.SetRows(views.DiskRows(disks))
	if cursor >= len(disks) {
		cursor = len(disks) - 1
	}
	m.state.DiskTable.SetCursor(max(cursor, 0))
}

func (m *BubbleTeaModel) setFiles(files []file.File) {
	m.state.Files = files
	if root := mountRootOf(files, m.state.Disks); root != "" {
		m.state.FileRoot = root
	}
	if m.state.FileCursor >= len(files) {
		m.state.FileCursor = max(len(files)-1, 0)
	}
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Path] = true
	}
	for path := range m.state.Marked {
		if !present[path] {
			delete(m.state.Marked, path)
		}
	}
}

// mountRootOf returns the deepest mount point containing the listed files.
func mountRootOf(files []file.File, disks []disk.Disk) string {
	if len(files) == 0 {
		return ""
	}
	root := ""
	for _, d := range disks {
		if !d.Mounted || d.MountPoint == "" || len(d.MountPoint) <= len(root) {
			continue
		}
		if strings.HasPrefix(files[0].Path, strings.TrimSuffix(d.MountPoint, "/")+"/") {
			root = d.MountPoint
		}
	}
	return root
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle help popup
	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
		}
		return m, nil
	}

	// Handle destination prompt
	if m.state.Prompting {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.state.ShowHelp = true
		return m, nil
	case "tab":
		if m.state.Focus == models.PaneDisks {
			m.state.Focus = models.PaneFiles
			m.state.DiskTable.Blur()
		} else {
			m.state.Focus = models.PaneDisks
			m.state.DiskTable.Focus()
		}
		return m, nil
	case "esc":
		if m.state.StatusPhase == models.PhaseError {
			m.state.StatusPhase = models.PhaseReady
			m.state.LastError = ""
		}
		return m, nil
	}

	if m.state.Focus == models.PaneFiles {
		return m.handleFileKey(msg)
	}
	return m.handleDiskKey(msg)
}

func (m BubbleTeaModel) handleDiskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m.dispatch(UICommand{Type: CommandRefresh})
	}

	d, ok := m.state.SelectedDisk()
	switch msg.String() {
	case "enter":
		if !ok {
			return m, nil
		}
		if d.Mounted {
			m.state.Focus = models.PaneFiles
			m.state.DiskTable.Blur()
			return m.dispatch(UICommand{Type: CommandList, Args: map[string]string{"root": d.MountPoint}})
		}
		return m.dispatch(deviceCommand(CommandMount, d))
	case "m":
		if ok {
			return m.dispatch(deviceCommand(CommandMount, d))
		}
	case "u":
		if ok {
			if d.Mounted && strings.HasPrefix(m.state.FileRoot, d.MountPoint) {
				m.state.Files = nil
				m.state.FileRoot = ""
				m.state.Marked = map[string]bool{}
			}
			return m.dispatch(deviceCommand(CommandUnmount, d))
		}
	case "c":
		if ok {
			return m.dispatch(deviceCommand(CommandCheck, d))
		}
	case "i":
		if ok {
			return m.dispatch(deviceCommand(CommandInfo, d))
		}
	default:
		var cmd tea.Cmd
		m.state.DiskTable, cmd = m.state.DiskTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BubbleTeaModel) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.state.FileCursor > 0 {
			m.state.FileCursor--
		}
	case "down", "j":
		if m.state.FileCursor < len(m.state.Files)-1 {
			m.state.FileCursor++
		}
	case " ", "space":
		if m.state.FileCursor < len(m.state.Files) {
			path := m.state.Files[m.state.FileCursor].Path
			if m.state.Marked[path] {
				delete(m.state.Marked, path)
			} else {
				m.state.Marked[path] = true
			}
		}
	case "a":
		if len(m.state.MarkedFiles()) == len(m.state.Files) {
			m.state.Marked = map[string]bool{}
		} else {
			for _, f := range m.state.Files {
				m.state.Marked[f.Path] = true
			}
		}
	case "s":
		if len(m.state.Files) > 0 {
			files := append([]file.File(nil), m.state.Files...)
			return m.dispatch(UICommand{Type: CommandScan, Files: files})
		}
	case "y":
		if len(m.state.MarkedFiles()) > 0 {
			m.state.Prompting = true
			m.state.Input.SetValue("")
			return m, m.state.Input.Focus()
		}
	}
	return m, nil
}

func (m BubbleTeaModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state.Prompting = false
		m.state.Input.Blur()
		return m, nil
	case "enter":
		dest := strings.TrimSpace(m.state.Input.Value())
		if dest == "" {
			return m, nil
		}
		m.state.Prompting = false
		m.state.Input.Blur()
		m.state.Input.SetValue("")
		m.state.Copying = true
		m.state.ProgressValue = 0
		m.state.ProgressMessage = ""
		return m.dispatch(UICommand{
			Type:  CommandCopy,
			Args:  map[string]string{"dest": dest},
			Files: m.state.MarkedFiles(),
		})
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// dispatch marks the status bar busy and hands the command to the session loop.
func (m BubbleTeaModel) dispatch(c UICommand) (tea.Model, tea.Cmd) {
	m.state.StatusPhase = models.PhaseWorking
	m.state.StatusMessage = services.FormatCommandDescription(c.Type, c.Args)
	m.state.LastError = ""
	if c.Type == CommandList {
		m.state.FileRoot = c.Args["root"]
	}
	return m, m.send(c)
}

// send delivers a command without blocking the update loop.
func (m BubbleTeaModel) send(c UICommand) tea.Cmd {
	ch := m.commandChan
	return func() tea.Msg {
		ch <- c
		return nil
	}
}

func deviceCommand(kind string, d disk.Disk) UICommand {
	return UICommand{Type: kind, Args: map[string]string{"device": d.DevicePath}}
}

// listen waits for the next value on ch and wraps it as a message.
func listen[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return wrap(<-ch)
	}
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
