//go:build darwin

package events

import (
	"time"

	"golang.org/x/sys/unix"
)

// Lstat reads all four timestamps.
func Lstat(path string) (Times, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Times{}, err
	}
	return Times{
		Birth:  time.Unix(st.Btim.Unix()),
		Modify: time.Unix(st.Mtim.Unix()),
		Change: time.Unix(st.Ctim.Unix()),
		Access: time.Unix(st.Atim.Unix()),
	}, nil
}
