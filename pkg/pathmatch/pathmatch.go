// Package pathmatch decides whether a path lives inside a directory.
// Matching is done on cleaned paths and respects separator boundaries,
// so /usr/lib never contains /usr/libexec.
package pathmatch

import (
	"path/filepath"
	"strings"
)

// Under reports whether path equals dir or is a descendant of it.
func Under(path, dir string) bool {
	path = filepath.Clean(path)
	dir = filepath.Clean(dir)
	if path == dir {
		return true
	}
	sep := string(filepath.Separator)
	if dir == sep {
		return strings.HasPrefix(path, sep)
	}
	return strings.HasPrefix(path, dir+sep)
}

// Belongs reports whether the parent directory of filePath equals dir or
// descends from it.
func Belongs(filePath, dir string) bool {
	return Under(filepath.Dir(filepath.Clean(filePath)), dir)
}

// AnyBelongs returns true if filePath belongs to at least one of dirs.
func AnyBelongs(filePath string, dirs []string) bool {
	for _, d := range dirs {
		if Belongs(filePath, d) {
			return true
		}
	}
	return false
}

// AnyUnder returns true if path is under at least one of dirs.
func AnyUnder(path string, dirs []string) bool {
	for _, d := range dirs {
		if Under(path, d) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether s contains any of the non-empty substrings.
func ContainsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
