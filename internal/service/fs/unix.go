package fs

import (
	"os"
	"os/user"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// FreeSpace returns the bytes available to an unprivileged user on the filesystem holding path.
func (fs *OSFileSystem) FreeSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, &StatfsError{Path: path, Cause: err}
	}
	return st.Bavail * uint64(st.Bsize), nil
}

// Readable reports whether the current user may read path.
func (fs *OSFileSystem) Readable(path string) error {
	return unix.Access(path, unix.R_OK)
}

// TryLock takes and immediately releases a non-blocking exclusive flock on path.
// It returns LockedError when another process holds a conflicting lock.
func (fs *OSFileSystem) TryLock(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	fd := int(file.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		if err == unix.EWOULDBLOCK {
			return &LockedError{Path: path}
		}
		return err
	}
	return unix.Flock(fd, unix.LOCK_UN)
}

// ChangeTime returns the inode change time recorded in info, or the zero time.
// Linux has no portable creation time; ctime is the closest the stat call offers.
// os.Stat fills Sys() with a *syscall.Stat_t, not the x/sys/unix type.
func (fs *OSFileSystem) ChangeTime(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(st.Ctim.Unix())
}

// OwnerName resolves the owning user of info, falling back to the numeric uid.
func (fs *OSFileSystem) OwnerName(info os.FileInfo) string {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}
	uid := strconv.FormatUint(uint64(st.Uid), 10)
	if u, err := user.LookupId(uid); err == nil {
		return u.Username
	}
	return uid
}

// IsRoot reports whether the process runs with an effective uid of 0.
func (fs *OSFileSystem) IsRoot() bool {
	return unix.Geteuid() == 0
}
