package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info for a path without following symlinks.
func (fs *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Open opens a file for reading.
func (fs *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// ReadHeader reads at most n leading bytes of a file.
// A file shorter than n yields a short slice without error.
func (fs *OSFileSystem) ReadHeader(path string, n int) ([]byte, error) {
	if n < 0 {
		return nil, &InvalidSizeError{Value: int64(n)}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// WalkDir walks the file tree rooted at root.
func (fs *OSFileSystem) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// EnsureDirs creates directories recursively if they don't exist.
func (fs *OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteStreamAtomic copies r into path using the temp file + rename pattern.
// A copy interrupted by a read error or a full disk never leaves a partial file at path.
// The temp file is created in the same directory as the target to ensure atomic rename.
func (fs *OSFileSystem) WriteStreamAtomic(path string, r io.Reader, perm os.FileMode, buf []byte) (int64, error) {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".salvage-*")
	if err != nil {
		return 0, &TempFileError{Dir: dir, Cause: err}
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	written, err := io.CopyBuffer(tmpFile, r, buf)
	if err != nil {
		return written, &TempWriteError{Path: tmpPath, Cause: err}
	}

	if err := tmpFile.Sync(); err != nil {
		return written, &TempSyncError{Path: tmpPath, Cause: err}
	}

	// Close file before rename (required on some systems)
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return written, &TempCloseError{Path: tmpPath, Cause: err}
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, path); err != nil {
		return written, &RenameError{Old: tmpPath, New: path, Cause: err}
	}
	needsCleanup = false

	if err := os.Chmod(path, perm); err != nil {
		return written, &ChmodError{Path: path, Mode: perm, Cause: err}
	}

	return written, nil
}

// Chtimes sets the access and modification times of a file.
func (fs *OSFileSystem) Chtimes(path string, atime, mtime time.Time) error {
	return os.Chtimes(path, atime, mtime)
}

// Remove deletes a file.
func (fs *OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}
