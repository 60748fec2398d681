package ui

import (
	"sync"
	"time"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/ui/services"
	tea "github.com/charmbracelet/bubbletea"
)

// UI implements app.View using Bubble Tea
type UI struct {
	program *tea.Program

	// Session -> UI channels
	diskListChan   chan []disk.Disk
	fileListChan   chan []file.File
	progressChan   chan progressMsg
	errorChan      chan string
	diskStatusChan chan diskStatusMsg
	diskInfoChan   chan diskInfoMsg
	statusChan     chan statusMsg

	// UI -> Session
	commandChan chan UICommand

	// Ready signal
	readyChan chan struct{}

	// Closed once the program has exited; pending sends give up
	doneChan chan struct{}
	doneOnce sync.Once
}

// Internal message types
type progressMsg struct {
	Value   int
	Message string
}

type diskStatusMsg struct {
	Device string
	Status disk.FilesystemStatus
}

type diskInfoMsg struct {
	Device string
	Info   disk.DiskInfo
}

type statusMsg struct {
	Phase   string
	Message string
}

// UIChannels holds the channels for UI communication
type UIChannels struct {
	DiskListChan   chan []disk.Disk
	FileListChan   chan []file.File
	ProgressChan   chan progressMsg
	ErrorChan      chan string
	DiskStatusChan chan diskStatusMsg
	DiskInfoChan   chan diskInfoMsg
	StatusChan     chan statusMsg
	CommandChan    chan UICommand
	ReadyChan      chan struct{} // Signals when UI is ready to accept updates
}

// NewUIChannels creates a new UIChannels struct with default buffers
func NewUIChannels() *UIChannels {
	return &UIChannels{
		DiskListChan:   make(chan []disk.Disk, 4),
		FileListChan:   make(chan []file.File, 4),
		ProgressChan:   make(chan progressMsg, 64),
		ErrorChan:      make(chan string, 10),
		DiskStatusChan: make(chan diskStatusMsg, 4),
		DiskInfoChan:   make(chan diskInfoMsg, 4),
		StatusChan:     make(chan statusMsg, 10),
		CommandChan:    make(chan UICommand, 10),
		ReadyChan:      make(chan struct{}),
	}
}

// NewUI creates a new Bubble Tea UI
func NewUI(
	channels *UIChannels,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	tickInterval time.Duration,
) *UI {
	ui := &UI{
		diskListChan:   channels.DiskListChan,
		fileListChan:   channels.FileListChan,
		progressChan:   channels.ProgressChan,
		errorChan:      channels.ErrorChan,
		diskStatusChan: channels.DiskStatusChan,
		diskInfoChan:   channels.DiskInfoChan,
		statusChan:     channels.StatusChan,
		commandChan:    channels.CommandChan,
		readyChan:      channels.ReadyChan,
		doneChan:       make(chan struct{}),
	}

	model := newBubbleTeaModel(channels, renderer, spinnerFactory, tickInterval)
	ui.program = tea.NewProgram(model, tea.WithAltScreen())

	return ui
}

// Start runs the UI program until the user quits
func (u *UI) Start() error {
	defer u.stop()
	_, err := u.program.Run()
	return err
}

// stop releases senders blocked on a program that no longer reads.
func (u *UI) stop() {
	u.doneOnce.Do(func() { close(u.doneChan) })
}

// Quit stops the UI program
func (u *UI) Quit() {
	u.program.Quit()
}

// UpdateDiskList replaces the disk table. Lists are only dropped after the program exits.
func (u *UI) UpdateDiskList(disks []disk.Disk) {
	select {
	case u.diskListChan <- disks:
	case <-u.doneChan:
	}
}

// UpdateFileList replaces the file list. Lists are only dropped after the program exits.
func (u *UI) UpdateFileList(files []file.File) {
	select {
	case u.fileListChan <- files:
	case <-u.doneChan:
	}
}

// UpdateProgress moves the copy progress bar
func (u *UI) UpdateProgress(value int, message string) {
	select {
	case u.progressChan <- progressMsg{Value: value, Message: message}:
	default:
		// Drop if channel is full, the next update supersedes it
	}
}

// ShowError displays an error in the status bar
func (u *UI) ShowError(message string) {
	select {
	case u.errorChan <- message:
	default:
		// Drop if channel is full
	}
}

// DisplayDiskStatus shows a filesystem check result in the details panel
func (u *UI) DisplayDiskStatus(d disk.Disk, status disk.FilesystemStatus) {
	select {
	case u.diskStatusChan <- diskStatusMsg{Device: d.DevicePath, Status: status}:
	case <-u.doneChan:
	}
}

// DisplayDiskInfo shows model, serial and SMART data in the details panel
func (u *UI) DisplayDiskInfo(d disk.Disk, info disk.DiskInfo) {
	select {
	case u.diskInfoChan <- diskInfoMsg{Device: d.DevicePath, Info: info}:
	case <-u.doneChan:
	}
}

// WriteStatus updates the status bar
func (u *UI) WriteStatus(phase string, message string) {
	select {
	case u.statusChan <- statusMsg{Phase: phase, Message: message}:
	default:
		// Drop if channel is full
	}
}

// Commands returns the command channel
func (u *UI) Commands() <-chan UICommand {
	return u.commandChan
}

// Ready returns a channel that is closed when the UI is ready to accept updates
func (u *UI) Ready() <-chan struct{} {
	return u.readyChan
}
