// Package categorize partitions classified file events into buckets by path.
package categorize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sw33tLie/diskdiff/pkg/config"
	"github.com/sw33tLie/diskdiff/pkg/events"
	"github.com/sw33tLie/diskdiff/pkg/pathmatch"
)

// Bucket names one output category.
type Bucket int

const (
	Ignored Bucket = iota
	Unimportant
	Notable
	Key
	Logs
	Uncategorized
)

var bucketNames = [...]string{"Ignored", "Unimportant", "Notable", "Key", "Logs", "Uncategorized"}

// Buckets lists every bucket in display order.
func Buckets() []Bucket {
	return []Bucket{Ignored, Unimportant, Notable, Key, Logs, Uncategorized}
}

func (b Bucket) String() string {
	if b < Ignored || b > Uncategorized {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// KindLists holds the paths of one bucket split by event kind.
type KindLists struct {
	Born     []string
	Modified []string
	Changed  []string
	Accessed []string
}

// Of returns the list for k.
func (l *KindLists) Of(k events.Kind) *[]string {
	switch k {
	case events.Born:
		return &l.Born
	case events.Modified:
		return &l.Modified
	case events.Changed:
		return &l.Changed
	default:
		return &l.Accessed
	}
}

// Len is the number of paths across all kinds.
func (l KindLists) Len() int {
	return len(l.Born) + len(l.Modified) + len(l.Changed) + len(l.Accessed)
}

// ScanResult is the final partition of a scan.
type ScanResult struct {
	Logs          KindLists
	Ignored       KindLists
	Unimportant   KindLists
	Notable       KindLists
	Key           KindLists
	Uncategorized KindLists
}

// Bucket returns the lists for b.
func (r *ScanResult) Bucket(b Bucket) *KindLists {
	switch b {
	case Ignored:
		return &r.Ignored
	case Unimportant:
		return &r.Unimportant
	case Notable:
		return &r.Notable
	case Key:
		return &r.Key
	case Logs:
		return &r.Logs
	default:
		return &r.Uncategorized
	}
}

// Count is the number of paths across all buckets.
func (r *ScanResult) Count() int {
	n := 0
	for _, b := range Buckets() {
		n += r.Bucket(b).Len()
	}
	return n
}

// Rule claims the paths it matches for its bucket.
type Rule struct {
	Bucket Bucket
	Match  func(path string) bool
}

// Rules builds the fixed precedence list from a configuration:
// ignored, key, logs, notable, unimportant.
func Rules(cfg *config.Configuration) ([]Rule, error) {
	ignoredFiles, err := compileGlobs(cfg.IgnoredFiles)
	if err != nil {
		return nil, err
	}

	dirs := cfg.Dirs
	return []Rule{
		{Bucket: Ignored, Match: func(p string) bool {
			return pathmatch.AnyBelongs(p, dirs.Ignored) || matchAny(ignoredFiles, p)
		}},
		{Bucket: Key, Match: under(dirs.Key)},
		{Bucket: Logs, Match: IsLogFile},
		{Bucket: Notable, Match: under(dirs.Notable)},
		{Bucket: Unimportant, Match: under(dirs.Unimportant)},
	}, nil
}

func under(dirs []string) func(string) bool {
	return func(p string) bool { return pathmatch.AnyBelongs(p, dirs) }
}

// IsLogFile reports whether a path looks like a log: its directory contains
// "logs", or its file name contains "log" but not "login".
func IsLogFile(path string) bool {
	dir, name := filepath.Dir(path), filepath.Base(path)
	return strings.Contains(dir, "logs") ||
		(strings.Contains(name, "log") && !strings.Contains(name, "login"))
}

// Categorize distributes events over the buckets. Each rule, in order, claims
// the matching paths from what earlier rules left; the rest is uncategorized.
func Categorize(evs []events.FileEvent, rules []Rule) ScanResult {
	var remaining KindLists
	for _, e := range evs {
		l := remaining.Of(e.Kind)
		*l = append(*l, e.Path)
	}

	var result ScanResult
	for _, rule := range rules {
		dst := result.Bucket(rule.Bucket)
		for _, k := range events.Kinds() {
			claimed, rest := partition(*remaining.Of(k), rule.Match)
			*dst.Of(k) = append(*dst.Of(k), claimed...)
			*remaining.Of(k) = rest
		}
	}
	result.Uncategorized = remaining
	return result
}

// partition splits paths into those matching pred and the rest, keeping the
// relative order of both.
func partition(paths []string, pred func(string) bool) (claimed, rest []string) {
	for _, p := range paths {
		if pred(p) {
			claimed = append(claimed, p)
		} else {
			rest = append(rest, p)
		}
	}
	return claimed, rest
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("invalid ignored_files pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
