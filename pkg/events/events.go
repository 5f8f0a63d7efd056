// Package events classifies a file by which of its timestamps fall inside a
// scan window.
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/sw33tLie/diskdiff/pkg/window"
)

// Kind is the single event recorded for a file. The declaration order is the
// priority order used by the Classifier.
type Kind int

const (
	Born Kind = iota
	Modified
	Changed
	Accessed
)

var kindNames = [...]string{"born", "modified", "changed", "accessed"}

// Kinds returns every kind in priority order.
func Kinds() []Kind {
	return []Kind{Born, Modified, Changed, Accessed}
}

func (k Kind) String() string {
	if k < Born || k > Accessed {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindSet holds the enabled/disabled toggle for each kind.
type KindSet [4]bool

// DefaultKinds enables born and modified.
func DefaultKinds() KindSet {
	return KindSet{Born: true, Modified: true}
}

// Enabled reports whether k is switched on.
func (s KindSet) Enabled(k Kind) bool {
	if k < Born || k > Accessed {
		return false
	}
	return s[k]
}

// Toggle flips k.
func (s KindSet) Toggle(k Kind) KindSet {
	s[k] = !s[k]
	return s
}

func (s KindSet) String() string {
	var on []string
	for _, k := range Kinds() {
		if s[k] {
			on = append(on, k.String())
		}
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}

// FileEvent pairs a file path with the one kind recorded for it.
type FileEvent struct {
	Path string
	Kind Kind
}

// Times are the four OS-level timestamps of a file.
type Times struct {
	Birth  time.Time
	Modify time.Time
	Change time.Time
	Access time.Time
}

func (t Times) of(k Kind) time.Time {
	switch k {
	case Born:
		return t.Birth
	case Modified:
		return t.Modify
	case Changed:
		return t.Change
	default:
		return t.Access
	}
}

// StatFunc reads the timestamps of a path without following symlinks.
type StatFunc func(path string) (Times, error)

// Classifier decides which kind, if any, applies to a file.
type Classifier struct {
	Window window.Window
	Kinds  KindSet
	// Stat defaults to Lstat.
	Stat StatFunc
}

// Classify returns the first enabled kind, in priority order, whose timestamp
// lies inside the window. A file that cannot be stat'ed is not classified.
func (c *Classifier) Classify(path string) (Kind, bool) {
	stat := c.Stat
	if stat == nil {
		stat = Lstat
	}
	times, err := stat(path)
	if err != nil {
		return 0, false
	}
	for _, k := range Kinds() {
		if c.Kinds.Enabled(k) && c.Window.Contains(times.of(k)) {
			return k, true
		}
	}
	return 0, false
}
