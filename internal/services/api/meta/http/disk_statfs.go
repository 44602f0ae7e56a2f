//go:build linux || darwin || freebsd

package http

import (
	"errors"

	"golang.org/x/sys/unix"
)

var errDiskUnsupported = errors.New("disk check unsupported on this platform")

// diskUsed returns the used fraction of the volume holding path
func diskUsed(path string) (float64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	total := uint64(st.Blocks)
	if total == 0 {
		return 0, nil
	}
	return 1 - float64(uint64(st.Bavail))/float64(total), nil
}
