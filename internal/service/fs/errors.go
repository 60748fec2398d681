package fs

import (
	"fmt"
	"os"
)

// -- Errors --

type InvalidSizeError struct {
	Value int64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("size cannot be negative: %d", e.Value)
}
func (e *InvalidSizeError) InvalidInput() bool { return true }

type TempFileError struct {
	Dir   string
	Cause error
}

func (e *TempFileError) Error() string {
	return fmt.Sprintf("failed to create temp file in %s: %v", e.Dir, e.Cause)
}
func (e *TempFileError) Unwrap() error { return e.Cause }
func (e *TempFileError) IOError() bool { return true }

type TempWriteError struct {
	Path  string
	Cause error
}

func (e *TempWriteError) Error() string {
	return fmt.Sprintf("failed to write to temp file %s: %v", e.Path, e.Cause)
}
func (e *TempWriteError) Unwrap() error { return e.Cause }
func (e *TempWriteError) IOError() bool { return true }

type TempSyncError struct {
	Path  string
	Cause error
}

func (e *TempSyncError) Error() string {
	return fmt.Sprintf("failed to sync temp file %s: %v", e.Path, e.Cause)
}
func (e *TempSyncError) Unwrap() error { return e.Cause }
func (e *TempSyncError) IOError() bool { return true }

type TempCloseError struct {
	Path  string
	Cause error
}

func (e *TempCloseError) Error() string {
	return fmt.Sprintf("failed to close temp file %s: %v", e.Path, e.Cause)
}
func (e *TempCloseError) Unwrap() error { return e.Cause }
func (e *TempCloseError) IOError() bool { return true }

type RenameError struct {
	Old   string
	New   string
	Cause error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.Old, e.New, e.Cause)
}
func (e *RenameError) Unwrap() error { return e.Cause }
func (e *RenameError) IOError() bool { return true }

type ChmodError struct {
	Path  string
	Mode  os.FileMode
	Cause error
}

func (e *ChmodError) Error() string {
	return fmt.Sprintf("failed to set permissions for %s to %v: %v", e.Path, e.Mode, e.Cause)
}
func (e *ChmodError) Unwrap() error { return e.Cause }
func (e *ChmodError) IOError() bool { return true }

type StatfsError struct {
	Path  string
	Cause error
}

func (e *StatfsError) Error() string {
	return fmt.Sprintf("failed to query free space for %s: %v", e.Path, e.Cause)
}
func (e *StatfsError) Unwrap() error { return e.Cause }
func (e *StatfsError) IOError() bool { return true }

// LockedError is returned when another process holds a lock on the file.
type LockedError struct {
	Path string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("file %s is locked by another process", e.Path)
}
