package mocks

import (
	"os"
	"sync"
	"time"

	"github.com/Cyclone1070/salvage/internal/service/fs"
)

// MockFileSystem wraps the real filesystem so tests run against t.TempDir()
// while individual operations can be overridden to inject failures.
type MockFileSystem struct {
	*fs.OSFileSystem

	Mu        sync.Mutex
	OpErrors  map[string]error // operation -> error to return
	Free      *uint64          // overrides FreeSpace when set
	Locked    map[string]bool  // path -> TryLock reports LockedError
	Owner     string           // overrides OwnerName when non-empty
	DirsMade  []string
	Root      *bool // overrides IsRoot when set
	FixedTime time.Time
}

// NewMockFileSystem creates a mock backed by the OS filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		OSFileSystem: fs.NewOSFileSystem(),
		OpErrors:     make(map[string]error),
		Locked:       make(map[string]bool),
	}
}

// SetOperationError sets an error to return for a specific operation.
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// SetFreeSpace fixes the value FreeSpace reports.
func (f *MockFileSystem) SetFreeSpace(bytes uint64) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Free = &bytes
}

func (f *MockFileSystem) opError(operation string) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	return f.OpErrors[operation]
}

func (f *MockFileSystem) EnsureDirs(path string) error {
	if err := f.opError("EnsureDirs"); err != nil {
		return err
	}
	f.Mu.Lock()
	f.DirsMade = append(f.DirsMade, path)
	f.Mu.Unlock()
	return f.OSFileSystem.EnsureDirs(path)
}

func (f *MockFileSystem) FreeSpace(path string) (uint64, error) {
	if err := f.opError("FreeSpace"); err != nil {
		return 0, err
	}
	f.Mu.Lock()
	free := f.Free
	f.Mu.Unlock()
	if free != nil {
		return *free, nil
	}
	return f.OSFileSystem.FreeSpace(path)
}

func (f *MockFileSystem) Readable(path string) error {
	if err := f.opError("Readable"); err != nil {
		return err
	}
	return f.OSFileSystem.Readable(path)
}

func (f *MockFileSystem) TryLock(path string) error {
	if err := f.opError("TryLock"); err != nil {
		return err
	}
	f.Mu.Lock()
	locked := f.Locked[path]
	f.Mu.Unlock()
	if locked {
		return &fs.LockedError{Path: path}
	}
	return f.OSFileSystem.TryLock(path)
}

func (f *MockFileSystem) Chtimes(path string, atime, mtime time.Time) error {
	if err := f.opError("Chtimes"); err != nil {
		return err
	}
	return f.OSFileSystem.Chtimes(path, atime, mtime)
}

func (f *MockFileSystem) OwnerName(info os.FileInfo) string {
	if f.Owner != "" {
		return f.Owner
	}
	return f.OSFileSystem.OwnerName(info)
}

func (f *MockFileSystem) ChangeTime(info os.FileInfo) time.Time {
	if !f.FixedTime.IsZero() {
		return f.FixedTime
	}
	return f.OSFileSystem.ChangeTime(info)
}

func (f *MockFileSystem) IsRoot() bool {
	if f.Root != nil {
		return *f.Root
	}
	return f.OSFileSystem.IsRoot()
}

func (f *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	if err := f.opError("Stat"); err != nil {
		return nil, err
	}
	return f.OSFileSystem.Stat(path)
}
