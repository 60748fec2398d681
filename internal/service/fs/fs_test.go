package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestReadHeader(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	t.Run("Reads Leading Bytes", func(t *testing.T) {
		path := filepath.Join(dir, "image.png")
		require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nrest of file"), 0o644))

		header, err := fs.ReadHeader(path, 8)

		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), header)
	})

	t.Run("Short File Yields Short Slice", func(t *testing.T) {
		path := filepath.Join(dir, "short.txt")
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

		header, err := fs.ReadHeader(path, 8)

		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), header)
	})

	t.Run("Empty File Yields Empty Slice", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		header, err := fs.ReadHeader(path, 8)

		require.NoError(t, err)
		assert.Empty(t, header)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := fs.ReadHeader(filepath.Join(dir, "nope"), 8)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("Negative Size", func(t *testing.T) {
		_, err := fs.ReadHeader(filepath.Join(dir, "short.txt"), -1)
		var sizeErr *InvalidSizeError
		assert.True(t, errors.As(err, &sizeErr))
	})
}

func TestWriteStreamAtomic(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	t.Run("Writes Content And Mode", func(t *testing.T) {
		path := filepath.Join(dir, "out.bin")

		n, err := fs.WriteStreamAtomic(path, strings.NewReader("hello world"), 0o600, make([]byte, 4))

		require.NoError(t, err)
		assert.Equal(t, int64(11), n)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("Read Failure Leaves No File", func(t *testing.T) {
		path := filepath.Join(dir, "broken.bin")
		r := io.MultiReader(strings.NewReader("partial"), &failingReader{})

		_, err := fs.WriteStreamAtomic(path, r, 0o644, nil)

		var writeErr *TempWriteError
		require.True(t, errors.As(err, &writeErr))
		assert.True(t, writeErr.IOError())
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), ".salvage-"), "temp file left behind: %s", e.Name())
		}
	})

	t.Run("Missing Directory", func(t *testing.T) {
		_, err := fs.WriteStreamAtomic(filepath.Join(dir, "missing", "x"), strings.NewReader("x"), 0o644, nil)

		var tmpErr *TempFileError
		assert.True(t, errors.As(err, &tmpErr))
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device i/o error") }

func TestWalkDirAndEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	require.NoError(t, fs.EnsureDirs(filepath.Join(dir, "a", "b")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "b", "c.txt"), []byte("c"), 0o644))

	var seen []string
	err := fs.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			seen = append(seen, rel)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("a", "b", "c.txt")}, seen)
}

func TestChtimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	fs := NewOSFileSystem()

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, fs.Chtimes(path, mtime, mtime))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestFreeSpace(t *testing.T) {
	fs := NewOSFileSystem()

	free, err := fs.FreeSpace(t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))

	_, err = fs.FreeSpace("/definitely/not/here")
	var statfsErr *StatfsError
	assert.True(t, errors.As(err, &statfsErr))
}

func TestTryLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	fs := NewOSFileSystem()

	t.Run("Unlocked File", func(t *testing.T) {
		assert.NoError(t, fs.TryLock(path))
	})

	t.Run("Held Lock Is Reported", func(t *testing.T) {
		holder, err := os.Open(path)
		require.NoError(t, err)
		defer holder.Close()
		require.NoError(t, unix.Flock(int(holder.Fd()), unix.LOCK_EX))
		defer unix.Flock(int(holder.Fd()), unix.LOCK_UN)

		err = fs.TryLock(path)

		var lockedErr *LockedError
		assert.True(t, errors.As(err, &lockedErr))
	})
}

func TestStatHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	fs := NewOSFileSystem()

	info, err := fs.Stat(path)
	require.NoError(t, err)

	ctime := fs.ChangeTime(info)
	assert.False(t, ctime.IsZero())
	assert.WithinDuration(t, time.Now(), ctime, time.Minute)
	assert.Equal(t, currentOwner(t), fs.OwnerName(info))
	assert.NoError(t, fs.Readable(path))
}

// currentOwner is the name OwnerName should resolve for files this process creates.
func currentOwner(t *testing.T) string {
	t.Helper()
	uid := strconv.Itoa(os.Geteuid())
	if u, err := user.LookupId(uid); err == nil {
		return u.Username
	}
	return uid
}
