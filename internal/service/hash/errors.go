package hash

import "fmt"

type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported hash algorithm: %q", e.Algorithm)
}
func (e *UnsupportedAlgorithmError) InvalidInput() bool { return true }

// ReadError wraps a failure partway through a file, typically a bad sector.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read failed while hashing: %v", e.Cause)
	}
	return fmt.Sprintf("read failed while hashing %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() error { return e.Cause }
func (e *ReadError) IOError() bool { return true }
