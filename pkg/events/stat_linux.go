//go:build linux

package events

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// Lstat reads all four timestamps with statx. Filesystems that do not record
// a birth time report the change time in its place.
func Lstat(path string) (Times, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW,
		unix.STATX_BASIC_STATS|unix.STATX_BTIME, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return lstatLegacy(path)
	}
	if err != nil {
		return Times{}, err
	}

	t := Times{
		Modify: statxTime(stx.Mtime),
		Change: statxTime(stx.Ctime),
		Access: statxTime(stx.Atime),
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		t.Birth = statxTime(stx.Btime)
	} else {
		t.Birth = t.Change
	}
	return t, nil
}

func lstatLegacy(path string) (Times, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Times{}, err
	}
	change := time.Unix(st.Ctim.Unix())
	return Times{
		Birth:  change,
		Modify: time.Unix(st.Mtim.Unix()),
		Change: change,
		Access: time.Unix(st.Atim.Unix()),
	}, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
