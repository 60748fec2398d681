package file

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrorCode identifies the failing file operation.
type ErrorCode string

const (
	CodeList          ErrorCode = "FILE_001"
	CodeCopy          ErrorCode = "FILE_002"
	CodeVerify        ErrorCode = "FILE_003"
	CodeAttributes    ErrorCode = "FILE_004"
	CodeAccessibility ErrorCode = "FILE_005"
	CodeCorrupted     ErrorCode = "FILE_006"
)

// FileError is a coded failure concerning one path.
type FileError struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Path    string    `json:"path" yaml:"path"`
	Message string    `json:"message" yaml:"message"`
	Cause   error     `json:"-" yaml:"-"`
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FileError) Unwrap() error { return e.Cause }

func newFileError(code ErrorCode, path string, cause error, format string, args ...any) *FileError {
	return &FileError{Code: code, Path: path, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// InsufficientSpaceError is returned when the destination cannot hold the selection.
type InsufficientSpaceError struct {
	Destination string
	Needed      uint64
	Available   uint64
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("not enough space on %s: need %s, %s available",
		e.Destination, humanize.IBytes(e.Needed), humanize.IBytes(e.Available))
}

func (e *InsufficientSpaceError) InvalidInput() bool { return true }
