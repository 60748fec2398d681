package ui

import (
	"context"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
)

// Command types sent from the UI to the session loop.
const (
	CommandRefresh = "refresh"
	CommandMount   = "mount"
	CommandUnmount = "unmount"
	CommandCheck   = "check"
	CommandInfo    = "info"
	CommandList    = "list"
	CommandScan    = "scan"
	CommandCopy    = "copy"
)

// UICommand is a user action the session loop performs.
type UICommand struct {
	Type  string
	Args  map[string]string
	Files []file.File
}

// Session is the recovery session the UI drives.
//
// Context Usage:
// Every method accepts context.Context. Cancelling it (quitting the UI)
// stops long copies and scans between files.
type Session interface {
	DetectAndUpdateDisks(ctx context.Context) []disk.Disk
	HandleDiskSelection(ctx context.Context, devicePath string) (*disk.Disk, bool)
	MountDisk(ctx context.Context, d *disk.Disk) bool
	UnmountDisk(ctx context.Context, d *disk.Disk) bool
	CheckDiskStatus(ctx context.Context, d disk.Disk) disk.FilesystemStatus
	ShowDiskInfo(ctx context.Context, d disk.Disk) (disk.DiskInfo, bool)
	UpdateFileList(ctx context.Context, root string) []file.File
	CopyFiles(ctx context.Context, files []file.File, dest string) bool
	ScanCorruption(ctx context.Context, files []file.File) []file.FileError
}

// StatusWriter displays ephemeral status updates.
type StatusWriter interface {
	WriteStatus(phase string, message string)
}
