// Package scan runs one before/after window around a trigger and turns the
// files touched inside it into a categorized result.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/sw33tLie/diskdiff/pkg/categorize"
	"github.com/sw33tLie/diskdiff/pkg/config"
	"github.com/sw33tLie/diskdiff/pkg/events"
	"github.com/sw33tLie/diskdiff/pkg/traverse"
	"github.com/sw33tLie/diskdiff/pkg/window"
)

// Context is everything a single scan invocation owns.
type Context struct {
	Config *config.Configuration
	Kinds  events.KindSet
	Dodge  []string
	Log    traverse.Logger // optional

	// Now defaults to time.Now.
	Now func() time.Time
	// Stat defaults to events.Lstat.
	Stat events.StatFunc
	// OnIndexed is called with the number of events found before they are
	// categorized.
	OnIndexed func(count int)
}

// Outcome is what a scan produced.
type Outcome struct {
	Window window.Window
	Stats  traverse.Stats
	Result categorize.ScanResult
}

// Trigger blocks for the duration of the monitored activity.
type Trigger func(ctx context.Context) error

// Run validates the configuration, opens the window, waits for trigger,
// closes the window and scans the configured roots.
func Run(ctx context.Context, sc *Context, trigger Trigger) (*Outcome, error) {
	if sc.Config == nil {
		return nil, fmt.Errorf("scan: no configuration")
	}
	if err := config.ValidateRoots(sc.Config.Roots); err != nil {
		return nil, err
	}
	rules, err := categorize.Rules(sc.Config)
	if err != nil {
		return nil, err
	}
	now := sc.Now
	if now == nil {
		now = time.Now
	}

	pending := window.Begin(now(), sc.Config.Skew)
	if sc.Log != nil {
		sc.Log.Debugf("window opened at %s", pending.Start().Format(time.RFC3339Nano))
	}
	if err := trigger(ctx); err != nil {
		return nil, err
	}
	w, err := pending.End(now())
	if err != nil {
		return nil, err
	}

	return Collect(ctx, sc, w, rules)
}

// Collect traverses the roots against an already captured window and
// categorizes what it finds.
func Collect(ctx context.Context, sc *Context, w window.Window, rules []categorize.Rule) (*Outcome, error) {
	classifier := &events.Classifier{Window: w, Kinds: sc.Kinds, Stat: sc.Stat}
	tr := traverse.New(classifier, traverse.Options{
		Dodge:   sc.Dodge,
		Ignored: sc.Config.Dirs.Ignored,
		Log:     sc.Log,
	})

	found, stats, err := tr.Traverse(ctx, sc.Config.Roots)
	if err != nil {
		return nil, fmt.Errorf("traverse: %w", err)
	}
	if sc.OnIndexed != nil {
		sc.OnIndexed(len(found))
	}

	return &Outcome{
		Window: w,
		Stats:  stats,
		Result: categorize.Categorize(found, rules),
	}, nil
}
