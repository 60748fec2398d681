package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/ui/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records calls and returns scripted outcomes.
type fakeSession struct {
	mu       sync.Mutex
	calls    []string
	disks    []disk.Disk
	files    []file.File
	failOp   string
	problems []file.FileError
	status   disk.FilesystemStatus
	info     disk.DiskInfo
}

func (f *fakeSession) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSession) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSession) DetectAndUpdateDisks(ctx context.Context) []disk.Disk {
	f.record("detect")
	return f.disks
}

func (f *fakeSession) HandleDiskSelection(ctx context.Context, devicePath string) (*disk.Disk, bool) {
	f.record("select " + devicePath)
	for i := range f.disks {
		if f.disks[i].DevicePath == devicePath {
			d := f.disks[i]
			return &d, true
		}
	}
	return nil, false
}

func (f *fakeSession) MountDisk(ctx context.Context, d *disk.Disk) bool {
	f.record("mount " + d.DevicePath)
	if f.failOp == "mount" {
		return false
	}
	d.Mounted = true
	d.MountPoint = "/mnt/" + d.DevicePath[len("/dev/"):]
	return true
}

func (f *fakeSession) UnmountDisk(ctx context.Context, d *disk.Disk) bool {
	f.record("unmount " + d.DevicePath)
	return f.failOp != "unmount"
}

func (f *fakeSession) CheckDiskStatus(ctx context.Context, d disk.Disk) disk.FilesystemStatus {
	f.record("check " + d.DevicePath)
	return f.status
}

func (f *fakeSession) ShowDiskInfo(ctx context.Context, d disk.Disk) (disk.DiskInfo, bool) {
	f.record("info " + d.DevicePath)
	return f.info, f.failOp != "info"
}

func (f *fakeSession) UpdateFileList(ctx context.Context, root string) []file.File {
	f.record("list " + root)
	return f.files
}

func (f *fakeSession) CopyFiles(ctx context.Context, files []file.File, dest string) bool {
	f.record("copy " + dest)
	return f.failOp != "copy"
}

func (f *fakeSession) ScanCorruption(ctx context.Context, files []file.File) []file.FileError {
	f.record("scan")
	return f.problems
}

type statusRecorder struct {
	mu      sync.Mutex
	updates []statusMsg
}

func (s *statusRecorder) WriteStatus(phase, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, statusMsg{Phase: phase, Message: message})
}

func (s *statusRecorder) Last() statusMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.updates) == 0 {
		return statusMsg{}
	}
	return s.updates[len(s.updates)-1]
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		disks: []disk.Disk{{DevicePath: "/dev/sdb1", Filesystem: "ext4"}},
		files: []file.File{{Path: "/mnt/sdb1/a.txt"}, {Path: "/mnt/sdb1/b.txt"}},
	}
}

func TestHandleCommand(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		cmd       UICommand
		setup     func(*fakeSession)
		wantPhase string
		wantMsg   string
		wantCalls []string
	}{
		{
			name:      "refresh",
			cmd:       UICommand{Type: CommandRefresh},
			wantPhase: models.PhaseDone,
			wantMsg:   "1 disks detected",
			wantCalls: []string{"detect"},
		},
		{
			name:      "mount lists files",
			cmd:       UICommand{Type: CommandMount, Args: map[string]string{"device": "/dev/sdb1"}},
			wantPhase: models.PhaseDone,
			wantMsg:   "/dev/sdb1 mounted at /mnt/sdb1, 2 files",
			wantCalls: []string{"select /dev/sdb1", "mount /dev/sdb1", "detect", "list /mnt/sdb1"},
		},
		{
			name:      "mount failure",
			cmd:       UICommand{Type: CommandMount, Args: map[string]string{"device": "/dev/sdb1"}},
			setup:     func(f *fakeSession) { f.failOp = "mount" },
			wantPhase: models.PhaseError,
			wantMsg:   "failed to mount /dev/sdb1",
			wantCalls: []string{"select /dev/sdb1", "mount /dev/sdb1"},
		},
		{
			name:      "unmount refreshes",
			cmd:       UICommand{Type: CommandUnmount, Args: map[string]string{"device": "/dev/sdb1"}},
			wantPhase: models.PhaseDone,
			wantMsg:   "/dev/sdb1 unmounted",
			wantCalls: []string{"select /dev/sdb1", "unmount /dev/sdb1", "detect"},
		},
		{
			name:      "check with problems",
			cmd:       UICommand{Type: CommandCheck, Args: map[string]string{"device": "/dev/sdb1"}},
			wantPhase: models.PhaseDone,
			wantMsg:   "filesystem problems found on /dev/sdb1",
			wantCalls: []string{"select /dev/sdb1", "check /dev/sdb1"},
		},
		{
			name:      "check consistent",
			cmd:       UICommand{Type: CommandCheck, Args: map[string]string{"device": "/dev/sdb1"}},
			setup:     func(f *fakeSession) { f.status = disk.FilesystemStatus{IsConsistent: true} },
			wantPhase: models.PhaseDone,
			wantMsg:   "/dev/sdb1 is consistent",
		},
		{
			name:      "info",
			cmd:       UICommand{Type: CommandInfo, Args: map[string]string{"device": "/dev/sdb1"}},
			setup:     func(f *fakeSession) { f.info.Smart.HealthResult = "PASSED" },
			wantPhase: models.PhaseDone,
			wantMsg:   "/dev/sdb1 health: PASSED",
		},
		{
			name:      "info without health",
			cmd:       UICommand{Type: CommandInfo, Args: map[string]string{"device": "/dev/sdb1"}},
			wantPhase: models.PhaseDone,
			wantMsg:   "/dev/sdb1 health: unknown",
		},
		{
			name:      "unknown device",
			cmd:       UICommand{Type: CommandCheck, Args: map[string]string{"device": "/dev/sdz"}},
			wantPhase: models.PhaseError,
			wantMsg:   "disk not found: /dev/sdz",
		},
		{
			name:      "list",
			cmd:       UICommand{Type: CommandList, Args: map[string]string{"root": "/mnt/sdb1"}},
			wantPhase: models.PhaseDone,
			wantMsg:   "2 files detected",
		},
		{
			name:      "scan clean",
			cmd:       UICommand{Type: CommandScan},
			wantPhase: models.PhaseDone,
			wantMsg:   "no corrupted files found",
		},
		{
			name:      "scan with problems",
			cmd:       UICommand{Type: CommandScan},
			setup:     func(f *fakeSession) { f.problems = make([]file.FileError, 2) },
			wantPhase: models.PhaseDone,
			wantMsg:   "2 corrupted files found",
		},
		{
			name:      "copy",
			cmd:       UICommand{Type: CommandCopy, Args: map[string]string{"dest": "/srv/out"}, Files: make([]file.File, 3)},
			wantPhase: models.PhaseDone,
			wantMsg:   "3 files copied to /srv/out",
		},
		{
			name:      "copy failure",
			cmd:       UICommand{Type: CommandCopy, Args: map[string]string{"dest": "/srv/out"}},
			setup:     func(f *fakeSession) { f.failOp = "copy" },
			wantPhase: models.PhaseError,
			wantMsg:   "copy failed",
		},
		{
			name:      "unknown command",
			cmd:       UICommand{Type: "format"},
			wantPhase: models.PhaseError,
			wantMsg:   "unknown command: format",
			wantCalls: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSession()
			if tt.setup != nil {
				tt.setup(s)
			}

			phase, msg := handleCommand(ctx, s, tt.cmd)

			assert.Equal(t, tt.wantPhase, phase)
			assert.Equal(t, tt.wantMsg, msg)
			if tt.wantCalls != nil {
				assert.Equal(t, tt.wantCalls, append([]string{}, s.Calls()...))
			}
		})
	}
}

func TestServe_CommandsAndEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newFakeSession()
	status := &statusRecorder{}
	commands := make(chan UICommand, 1)
	events := make(chan disk.DeviceEvent, 1)

	done := make(chan struct{})
	go func() {
		Serve(ctx, s, status, commands, events)
		close(done)
	}()

	commands <- UICommand{Type: CommandRefresh}
	require.Eventually(t, func() bool { return status.Last().Message == "1 disks detected" }, time.Second, 5*time.Millisecond)

	events <- disk.DeviceEvent{Kind: disk.DeviceAdded, DevicePath: "/dev/sdc"}
	require.Eventually(t, func() bool {
		return status.Last().Message == "/dev/sdc "+disk.DeviceAdded.String()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"detect", "detect"}, s.Calls())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_ReturnsWhenCommandsClosed(t *testing.T) {
	commands := make(chan UICommand)
	close(commands)

	done := make(chan struct{})
	go func() {
		Serve(context.Background(), newFakeSession(), &statusRecorder{}, commands, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after commands closed")
	}
}
