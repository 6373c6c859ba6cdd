//go:build linux

package vault

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes reads the birth time through statx. Filesystems without btime
// support, and indexes not backed by a directory, fall back to mtime.
func fileTimes(diskPath string, info fs.FileInfo) (created, modified time.Time) {
	modified = info.ModTime()
	if diskPath == "" {
		return modified, modified
	}
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, diskPath, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME|unix.STATX_MTIME, &stx); err != nil {
		return modified, modified
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return modified, modified
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), modified
}
