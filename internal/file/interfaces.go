package file

import (
	"context"
	"io"
	iofs "io/fs"
	"os"
	"time"
)

// fileSystem is the subset of filesystem operations the handler needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	ReadHeader(path string, n int) ([]byte, error)
	WalkDir(root string, fn iofs.WalkDirFunc) error
	EnsureDirs(path string) error
	WriteStreamAtomic(path string, r io.Reader, perm os.FileMode, buf []byte) (int64, error)
	Chtimes(path string, atime, mtime time.Time) error
	FreeSpace(path string) (uint64, error)
	Readable(path string) error
	TryLock(path string) error
	ChangeTime(info os.FileInfo) time.Time
	OwnerName(info os.FileInfo) string
}

// hasher computes content digests.
type hasher interface {
	File(ctx context.Context, path string) (string, error)
	Forget(path string)
	Algorithm() string
}

// excludeMatcher decides which listing entries to skip.
type excludeMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}
