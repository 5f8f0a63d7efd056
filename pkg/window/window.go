// Package window holds the open time interval a scan is measured against.
package window

import (
	"errors"
	"time"
)

// DefaultSkew is subtracted from the start of a window. Some filesystems
// report change times slightly before the moment the process observed.
const DefaultSkew = 20 * time.Millisecond

var ErrEmptyWindow = errors.New("window start must be before its end")

// Window is the open interval (Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// New returns the window (start, end).
func New(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrEmptyWindow
	}
	return Window{Start: start, End: end}, nil
}

// Contains reports whether t lies strictly between Start and End.
func (w Window) Contains(t time.Time) bool {
	return w.Start.Before(t) && t.Before(w.End)
}

// Duration is the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Pending is a window whose start has been captured but whose end has not.
type Pending struct {
	start time.Time
}

// Begin captures the start of a window at now minus skew.
func Begin(now time.Time, skew time.Duration) Pending {
	if skew < 0 {
		skew = 0
	}
	return Pending{start: now.Add(-skew)}
}

// Start returns the captured start instant.
func (p Pending) Start() time.Time {
	return p.start
}

// End closes the window at now.
func (p Pending) End(now time.Time) (Window, error) {
	return New(p.start, now)
}
