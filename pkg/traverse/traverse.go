// Package traverse walks the scan roots once and collects a FileEvent for
// every regular file whose timestamps fall inside the scan window.
package traverse

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/sw33tLie/diskdiff/pkg/events"
	"github.com/sw33tLie/diskdiff/pkg/pathmatch"
)

// Logger abstracts logging so callers can use logrus or anything else that
// satisfies this interface.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// Classifier decides the event kind of a single file.
type Classifier interface {
	Classify(path string) (events.Kind, bool)
}

// Options are the exclusion rules applied while walking.
type Options struct {
	// Dodge skips any entry whose full path contains one of these substrings.
	Dodge []string
	// Ignored directories are never entered.
	Ignored []string
	Log     Logger // optional; nil = no logging
}

// Stats summarizes a traversal.
type Stats struct {
	Files       int // regular files handed to the classifier
	Events      int
	SkippedDirs int // pruned by the ignored list or a dodge keyword
	Unreadable  int // entries that could not be listed or inspected
}

// Traverser walks directory trees.
type Traverser struct {
	classifier Classifier
	opts       Options
}

// New returns a Traverser that classifies files with c.
func New(c Classifier, opts Options) *Traverser {
	if opts.Log == nil {
		opts.Log = nopLogger{}
	}
	return &Traverser{classifier: c, opts: opts}
}

// Traverse walks every root and returns the classified events. Unreadable
// directories and files are skipped; only cancellation of ctx aborts the walk,
// in which case the events gathered so far are returned with ctx's error.
func (t *Traverser) Traverse(ctx context.Context, roots []string) ([]events.FileEvent, Stats, error) {
	var (
		found []events.FileEvent
		stats Stats
	)

	for _, root := range collapseRoots(roots) {
		if err := t.walkRoot(ctx, root, &found, &stats); err != nil {
			stats.Events = len(found)
			return found, stats, err
		}
	}

	stats.Events = len(found)
	return found, stats, nil
}

func (t *Traverser) walkRoot(ctx context.Context, root string, found *[]events.FileEvent, stats *Stats) error {
	log := t.opts.Log

	// A trailing separator makes WalkDir follow a root that is itself a
	// symlink. Links below the root are still never followed.
	start := root
	if root != string(filepath.Separator) {
		start = root + string(filepath.Separator)
	}

	return filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			// Unreadable directories are skipped rather than aborting the scan.
			stats.Unreadable++
			log.Debugf("skipping %s: %v", path, err)
			return nil
		}

		if path == start {
			return nil
		}

		if pathmatch.ContainsAny(path, t.opts.Dodge) {
			if d.IsDir() {
				stats.SkippedDirs++
				return filepath.SkipDir
			}
			return nil
		}

		mode := d.Type()
		switch {
		case mode&fs.ModeSymlink != 0:
			return nil
		case d.IsDir():
			if pathmatch.AnyUnder(path, t.opts.Ignored) {
				stats.SkippedDirs++
				log.Debugf("pruning ignored directory %s", path)
				return filepath.SkipDir
			}
			return nil
		case mode.IsRegular():
			stats.Files++
			if kind, ok := t.classifier.Classify(path); ok {
				*found = append(*found, events.FileEvent{Path: path, Kind: kind})
			}
		}
		return nil
	})
}

// collapseRoots cleans the roots and drops any root nested inside another so
// that no file is visited twice. Nesting is decided on the symlink-resolved
// paths, but the surviving roots keep the spelling they were given.
func collapseRoots(roots []string) []string {
	type root struct{ given, real string }

	cleaned := make([]root, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		r = filepath.Clean(r)
		real, err := filepath.EvalSymlinks(r)
		if err != nil {
			real = r
		}
		cleaned = append(cleaned, root{given: r, real: real})
	}
	sort.SliceStable(cleaned, func(i, j int) bool { return cleaned[i].real < cleaned[j].real })

	var (
		out  []string
		seen []string
	)
	for _, r := range cleaned {
		if pathmatch.AnyUnder(r.real, seen) {
			continue
		}
		seen = append(seen, r.real)
		out = append(out, r.given)
	}
	return out
}
