//go:build !linux && !darwin

package events

import "os"

// Lstat only knows the modification time on this platform; the other kinds
// never match.
func Lstat(path string) (Times, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Times{}, err
	}
	return Times{Modify: info.ModTime()}, nil
}
