package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/logging"
	"github.com/Cyclone1070/salvage/internal/report"
	"go.uber.org/zap"
)

// Operation names recorded in history.
const (
	OpPrivileges = "privileges"
	OpDetect     = "detect"
	OpSelect     = "select"
	OpMount      = "mount"
	OpUnmount    = "unmount"
	OpCheck      = "check"
	OpInfo       = "info"
	OpList       = "list"
	OpCopy       = "copy"
	OpScan       = "scan"
)

// Application coordinates one recovery session: it drives the disk manager
// and file handler, pushes results to the view and logs every step. The
// logger is expected to tee into the history store.
type Application struct {
	disks  diskManager
	files  fileHandler
	runner commandRunner
	root   rootChecker
	view   View
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	detected []disk.Disk
	selected *disk.Disk
	info     *disk.DiskInfo
	check    *disk.FilesystemStatus
	listed   []file.File
	copies   []file.CopyResult
	problems []file.FileError
}

// New creates an Application with injected dependencies.
// A nil view discards updates and a nil logger discards logs.
func New(disks diskManager, files fileHandler, runner commandRunner, root rootChecker, view View, logger *zap.Logger) *Application {
	if disks == nil {
		panic("disks is required")
	}
	if files == nil {
		panic("files is required")
	}
	if runner == nil {
		panic("runner is required")
	}
	if root == nil {
		panic("root is required")
	}
	if view == nil {
		view = NopView{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		disks:  disks,
		files:  files,
		runner: runner,
		root:   root,
		view:   view,
		logger: logger,
		now:    time.Now,
	}
}

// SetView replaces the view. The TUI attaches itself after construction.
func (a *Application) SetView(v View) {
	if v == nil {
		v = NopView{}
	}
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}

func (a *Application) currentView() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *Application) opLogger(op string, fields ...zap.Field) *zap.Logger {
	return a.logger.With(append([]zap.Field{zap.String(logging.FieldOperation, op)}, fields...)...)
}

// CheckPrivileges reports whether privileged tools can run: the process is
// root, or sudo works without a password prompt.
func (a *Application) CheckPrivileges(ctx context.Context) bool {
	log := a.opLogger(OpPrivileges)
	if a.root.IsRoot() {
		log.Info("sudo check ok")
		return true
	}
	if _, err := a.runner.Run(ctx, []string{"sudo", "-n", "true"}); err != nil {
		log.Error(fmt.Sprintf("sudo check failed: %v", err))
		return false
	}
	log.Info("sudo check ok")
	return true
}

// DetectAndUpdateDisks detects block devices and pushes them to the view.
func (a *Application) DetectAndUpdateDisks(ctx context.Context) []disk.Disk {
	log := a.opLogger(OpDetect)
	disks, err := a.disks.DetectDisks(ctx)
	if err != nil {
		a.currentView().ShowError(err.Error())
	}

	a.mu.Lock()
	a.detected = disks
	a.mu.Unlock()

	a.currentView().UpdateDiskList(disks)
	if len(disks) == 0 {
		log.Warn("no disks detected")
	} else {
		log.Info(fmt.Sprintf("%d disks detected", len(disks)))
	}
	return disks
}

// HandleDiskSelection looks the device up among the detected disks,
// detecting first when nothing has been detected yet.
func (a *Application) HandleDiskSelection(ctx context.Context, devicePath string) (*disk.Disk, bool) {
	a.mu.Lock()
	known := a.detected
	a.mu.Unlock()
	if len(known) == 0 {
		known = a.DetectAndUpdateDisks(ctx)
	}

	log := a.opLogger(OpSelect, zap.String(logging.FieldDevice, devicePath))
	for i := range known {
		if known[i].DevicePath != devicePath {
			continue
		}
		d := known[i]
		a.mu.Lock()
		a.selected = &d
		a.info = nil
		a.check = nil
		a.mu.Unlock()
		log.Info(fmt.Sprintf("disk %s selected", devicePath))
		return &d, true
	}

	log.Warn(fmt.Sprintf("selected disk not found: %s", devicePath))
	a.currentView().ShowError(fmt.Sprintf("disk not found: %s", devicePath))
	return nil, false
}

// MountDisk mounts d and records the mount point on the tracked disk.
func (a *Application) MountDisk(ctx context.Context, d *disk.Disk) bool {
	log := a.opLogger(OpMount, zap.String(logging.FieldDevice, d.DevicePath))
	mp, err := a.disks.MountDisk(ctx, *d)
	if err != nil {
		log.Error(fmt.Sprintf("failed to mount disk %s", d.DevicePath), zap.Error(err))
		a.currentView().ShowError(err.Error())
		return false
	}
	d.Mounted = true
	d.MountPoint = mp
	a.track(*d)
	log.Info(fmt.Sprintf("disk %s mounted", d.DevicePath), zap.String(logging.FieldPath, mp))
	return true
}

// UnmountDisk unmounts d and clears its mount point.
func (a *Application) UnmountDisk(ctx context.Context, d *disk.Disk) bool {
	log := a.opLogger(OpUnmount, zap.String(logging.FieldDevice, d.DevicePath))
	if err := a.disks.UnmountDisk(ctx, *d); err != nil {
		log.Error(fmt.Sprintf("failed to unmount disk %s", d.DevicePath), zap.Error(err))
		a.currentView().ShowError(err.Error())
		return false
	}
	d.Mounted = false
	d.MountPoint = ""
	a.track(*d)
	log.Info(fmt.Sprintf("disk %s unmounted", d.DevicePath))
	return true
}

// track replaces the detected and selected copies of d.
func (a *Application) track(d disk.Disk) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.detected {
		if a.detected[i].DevicePath == d.DevicePath {
			a.detected[i] = d
		}
	}
	if a.selected != nil && a.selected.DevicePath == d.DevicePath {
		sel := d
		a.selected = &sel
	}
}

// CheckDiskStatus runs the filesystem checker and displays the result.
func (a *Application) CheckDiskStatus(ctx context.Context, d disk.Disk) disk.FilesystemStatus {
	log := a.opLogger(OpCheck, zap.String(logging.FieldDevice, d.DevicePath))
	status := a.disks.CheckFilesystem(ctx, d)

	a.mu.Lock()
	a.check = &status
	a.mu.Unlock()

	a.currentView().DisplayDiskStatus(d, status)
	if !status.IsConsistent {
		log.Error(fmt.Sprintf("filesystem problems found on disk %s", d.DevicePath), zap.String("details", status.Details))
	} else {
		log.Info(fmt.Sprintf("disk %s status check completed", d.DevicePath))
	}
	return status
}

// ShowDiskInfo gathers model, serial, partition table and SMART data for d.
func (a *Application) ShowDiskInfo(ctx context.Context, d disk.Disk) (disk.DiskInfo, bool) {
	log := a.opLogger(OpInfo, zap.String(logging.FieldDevice, d.DevicePath))
	info, err := a.disks.GetDiskInfo(ctx, d)
	if err != nil {
		log.Error(fmt.Sprintf("failed to read disk info for %s", d.DevicePath), zap.Error(err))
		a.currentView().ShowError(err.Error())
		return info, false
	}

	a.mu.Lock()
	a.info = &info
	a.mu.Unlock()

	a.currentView().DisplayDiskInfo(d, info)
	log.Info(fmt.Sprintf("disk %s info collected", d.DevicePath), zap.String("health", info.Smart.Health()))
	return info, true
}

// UpdateFileList lists the files under root and pushes them to the view.
func (a *Application) UpdateFileList(ctx context.Context, root string) []file.File {
	log := a.opLogger(OpList, zap.String(logging.FieldPath, root))
	files, err := a.files.ListFiles(ctx, root)
	if err != nil {
		a.currentView().ShowError(err.Error())
	}

	a.mu.Lock()
	a.listed = files
	a.mu.Unlock()

	a.currentView().UpdateFileList(files)
	log.Info(fmt.Sprintf("%d files detected", len(files)))
	return files
}

// CopyFiles copies files into dest while reporting progress from 0 to 100.
func (a *Application) CopyFiles(ctx context.Context, files []file.File, dest string) bool {
	log := a.opLogger(OpCopy, zap.String(logging.FieldPath, dest))
	view := a.currentView()

	view.UpdateProgress(0, "starting copy")
	results, err := a.files.CopyFiles(ctx, files, dest, func(p file.Progress) {
		if p.FilesDone == 0 {
			return
		}
		view.UpdateProgress(int(p.Percent()), fmt.Sprintf("copied %s", filepath.Base(p.Current)))
	})

	a.mu.Lock()
	a.copies = append(a.copies, results...)
	a.mu.Unlock()

	if err != nil {
		log.Error("file copy failed", zap.Int("copied", successful(results)), zap.Error(err))
		view.ShowError(err.Error())
		return false
	}

	view.UpdateProgress(100, "copy complete")
	log.Info("file copy complete", zap.Int("files", len(results)))
	return true
}

func successful(results []file.CopyResult) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// ScanCorruption classifies files and marks corrupted ones in place.
func (a *Application) ScanCorruption(ctx context.Context, files []file.File) []file.FileError {
	log := a.opLogger(OpScan)
	problems := a.files.HandleCorruptedFiles(ctx, files)

	a.mu.Lock()
	a.problems = problems
	a.mu.Unlock()

	a.currentView().UpdateFileList(files)
	if len(problems) > 0 {
		log.Warn(fmt.Sprintf("%d corrupted files found", len(problems)))
	} else {
		log.Info(fmt.Sprintf("%d files scanned, no corruption found", len(files)))
	}
	return problems
}

// Disks returns the disks from the last detection.
func (a *Application) Disks() []disk.Disk {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]disk.Disk(nil), a.detected...)
}

// Selected returns the selected disk, or nil.
func (a *Application) Selected() *disk.Disk {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selected == nil {
		return nil
	}
	d := *a.selected
	return &d
}

// Report snapshots the session for the recovery report.
func (a *Application) Report() report.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := report.Session{
		GeneratedAt:   a.now(),
		Disks:         append([]disk.Disk(nil), a.detected...),
		Info:          a.info,
		Check:         a.check,
		FilesListed:   len(a.listed),
		Copies:        append([]file.CopyResult(nil), a.copies...),
		Problems:      append([]file.FileError(nil), a.problems...),
		HashAlgorithm: a.files.HashAlgorithm(),
	}
	if a.selected != nil {
		d := *a.selected
		s.Disk = &d
	}
	return s
}
