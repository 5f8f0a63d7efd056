// Package report renders a scan result to the terminal and to a per-run log
// file.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sw33tLie/diskdiff/pkg/categorize"
	"github.com/sw33tLie/diskdiff/pkg/events"
)

// Reset clears any color set before it.
const Reset = "\033[0m"

var colors = map[categorize.Bucket]string{
	categorize.Ignored:       "\033[38;5;242m",
	categorize.Unimportant:   "\033[38;5;160m",
	categorize.Notable:       "\033[38;5;190m",
	categorize.Key:           "\033[38;5;46m",
	categorize.Logs:          "\033[38;5;39m",
	categorize.Uncategorized: Reset,
}

// Red is used for warnings printed alongside the report.
const Red = "\033[38;5;160m"

// labels are right-aligned so the paths line up.
var labels = map[events.Kind]string{
	events.Born:     "      Born: ",
	events.Modified: "  Modified: ",
	events.Changed:  "   Changed: ",
	events.Accessed: "  Accessed: ",
}

// LogPath derives the log file for a run from the monitored command. Manual
// runs are named after the time they started.
func LogPath(dir string, args []string, manual bool, now time.Time) string {
	name := ""
	if !manual {
		name = commandAsFilename(args)
	}
	if name == "" {
		name = fmt.Sprintf("manual-%d", now.Unix())
	}
	return filepath.Join(dir, name+".log")
}

func commandAsFilename(args []string) string {
	s := strings.ToLower(strings.Join(args, " "))
	return strings.NewReplacer(" ", "_", "/", "_").Replace(s)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Progress overwrites the current terminal line with msg.
func Progress(w io.Writer, msg string) {
	fmt.Fprintf(w, "\r\033[K\t%s", msg)
}

// Renderer writes results in the diskdiff text format.
type Renderer struct {
	Color bool
}

// Terminal writes every non-empty bucket to w.
func (r Renderer) Terminal(w io.Writer, result *categorize.ScanResult) error {
	bw := bufio.NewWriter(w)
	for _, b := range categorize.Buckets() {
		lists := result.Bucket(b)
		if lists.Len() == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n%s:\n", b)
		r.writeLines(bw, b, lists)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

// WriteLog truncates path and writes the uncolored report to it.
func WriteLog(path string, result *categorize.ScanResult) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	bw := bufio.NewWriter(f)
	plain := Renderer{}
	for _, b := range categorize.Buckets() {
		lists := result.Bucket(b)
		if lists.Len() == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n_____%s_____\n", b)
		plain.writeLines(bw, b, lists)
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write log file: %w", err)
	}
	return f.Close()
}

func (r Renderer) writeLines(w io.Writer, b categorize.Bucket, lists *categorize.KindLists) {
	color, end := "", ""
	if r.Color {
		color, end = colors[b], Reset
	}
	for _, k := range events.Kinds() {
		paths := append([]string(nil), *lists.Of(k)...)
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Fprintf(w, "%s%s%s%s\n", labels[k], color, p, end)
		}
	}
}
