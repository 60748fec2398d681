package disk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/salvage/internal/service/executor"
)

// Error codes reported alongside disk failures.
const (
	CodeDetect      = "DISK_001"
	CodeMount       = "DISK_002"
	CodeUnmount     = "DISK_003"
	CodeCheck       = "DISK_004"
	CodeUnsupported = "DISK_005"
	CodeSmart       = "DISK_006"
	CodeInfo        = "DISK_007"
)

// ErrNoDevice is returned when a disk has no device path.
var ErrNoDevice = errors.New("disk has no device path")

// CommandFailedError is returned when an external tool exits non-zero or cannot run.
type CommandFailedError struct {
	Code     string
	Command  []string
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("%s: %s failed", e.Code, strings.Join(e.Command, " "))
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CommandFailedError) Unwrap() error { return e.Cause }

// DetectError is returned when lsblk cannot be run or its output is unreadable.
type DetectError struct {
	Cause error
}

func (e *DetectError) Error() string {
	return fmt.Sprintf("%s: failed to detect disks: %v", CodeDetect, e.Cause)
}
func (e *DetectError) Unwrap() error { return e.Cause }

// MountError is returned when mount fails.
type MountError struct {
	Device     string
	MountPoint string
	Cause      error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("%s: failed to mount %s on %s: %v", CodeMount, e.Device, e.MountPoint, e.Cause)
}
func (e *MountError) Unwrap() error { return e.Cause }

// UnmountError is returned when umount fails.
type UnmountError struct {
	Device string
	Cause  error
}

func (e *UnmountError) Error() string {
	return fmt.Sprintf("%s: failed to unmount %s: %v", CodeUnmount, e.Device, e.Cause)
}
func (e *UnmountError) Unwrap() error { return e.Cause }

// UnsupportedFilesystemError is returned when no checker exists for a filesystem.
type UnsupportedFilesystemError struct {
	Filesystem string
}

func (e *UnsupportedFilesystemError) Error() string {
	return "unsupported filesystem: " + e.Filesystem
}
func (e *UnsupportedFilesystemError) InvalidInput() bool { return true }

// commandFailure builds a CommandFailedError from a runner result, which may be nil
// when the tool could not be started.
func commandFailure(code string, cmd []string, res *executor.Result, err error) *CommandFailedError {
	failure := &CommandFailedError{Code: code, Command: cmd, ExitCode: -1, Cause: err}
	if res != nil {
		failure.ExitCode = res.ExitCode
		failure.Stderr = res.Stderr
		if failure.Stderr == "" {
			// Combined runs put everything on stdout.
			failure.Stderr = res.Stdout
		}
	}
	return failure
}
