package app

import (
	"context"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/service/executor"
)

// View receives session state from the Application.
// Implementations must be safe to call from any goroutine.
type View interface {
	UpdateDiskList(disks []disk.Disk)
	UpdateFileList(files []file.File)
	UpdateProgress(value int, message string)
	ShowError(message string)
	DisplayDiskStatus(d disk.Disk, status disk.FilesystemStatus)
	DisplayDiskInfo(d disk.Disk, info disk.DiskInfo)
}

// diskManager is the subset of disk.Manager the Application drives.
type diskManager interface {
	DetectDisks(ctx context.Context) ([]disk.Disk, error)
	MountDisk(ctx context.Context, d disk.Disk) (string, error)
	UnmountDisk(ctx context.Context, d disk.Disk) error
	CheckFilesystem(ctx context.Context, d disk.Disk) disk.FilesystemStatus
	GetDiskInfo(ctx context.Context, d disk.Disk) (disk.DiskInfo, error)
}

// fileHandler is the subset of file.Handler the Application drives.
type fileHandler interface {
	ListFiles(ctx context.Context, root string) ([]file.File, error)
	CopyFiles(ctx context.Context, files []file.File, dest string, progress file.ProgressFunc) ([]file.CopyResult, error)
	HandleCorruptedFiles(ctx context.Context, files []file.File) []file.FileError
	HashAlgorithm() string
}

// commandRunner runs the sudo probe.
type commandRunner interface {
	Run(ctx context.Context, command []string) (*executor.Result, error)
}

// rootChecker reports whether the process already has root privileges.
type rootChecker interface {
	IsRoot() bool
}
