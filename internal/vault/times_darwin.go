//go:build darwin

package vault

import (
	"io/fs"
	"syscall"
	"time"
)

func fileTimes(_ string, info fs.FileInfo) (created, modified time.Time) {
	modified = info.ModTime()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return modified, modified
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec), modified
}
