package history

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("history store is closed")

type OpenError struct {
	Path  string
	Cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open history %s: %v", e.Path, e.Cause)
}
func (e *OpenError) Unwrap() error { return e.Cause }
func (e *OpenError) IOError() bool { return true }

type SaveError struct {
	Path  string
	Cause error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save logs to %s: %v", e.Path, e.Cause)
}
func (e *SaveError) Unwrap() error { return e.Cause }
func (e *SaveError) IOError() bool { return true }
