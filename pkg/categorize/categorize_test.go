package categorize

import (
	"reflect"
	"sort"
	"testing"

	"github.com/sw33tLie/diskdiff/pkg/config"
	"github.com/sw33tLie/diskdiff/pkg/events"
)

func defaultRules(t *testing.T) []Rule {
	t.Helper()
	cfg := config.Default()
	rules, err := Rules(&cfg)
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	return rules
}

func born(paths ...string) []events.FileEvent {
	out := make([]events.FileEvent, 0, len(paths))
	for _, p := range paths {
		out = append(out, events.FileEvent{Path: p, Kind: events.Born})
	}
	return out
}

func TestIsLogFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/var/log/syslog", true},
		{"/etc/login.defs", false},
		{"/srv/app/logs/out.txt", true},
		{"/home/u/changelog.md", true},
		{"/home/u/Catalog.txt", true},
		{"/home/u/LOG.txt", false},
		{"/var/log/login.log", false},
		{"/etc/hosts", false},
	}
	for _, tt := range tests {
		if got := IsLogFile(tt.path); got != tt.want {
			t.Errorf("IsLogFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCategorizeDefaultPrecedence(t *testing.T) {
	rules := defaultRules(t)
	result := Categorize(born(
		"/var/cache/apt/pkgcache.bin", // ignored and key (/var)
		"/etc/login.defs",             // key, not a log
		"/var/log/syslog",             // key wins over the log heuristic
		"/srv/logs/app.out",           // log
		"/tmp/a.txt",                  // notable
		"/usr/lib/systemd/system/x.service",
		"/var/lib/rsyslog/imjournal.state", // ignored file
		"/data/x",                          // nothing
	), rules)

	checks := []struct {
		bucket Bucket
		want   []string
	}{
		{Ignored, []string{"/var/cache/apt/pkgcache.bin", "/var/lib/rsyslog/imjournal.state"}},
		{Key, []string{"/etc/login.defs", "/usr/lib/systemd/system/x.service", "/var/log/syslog"}},
		{Logs, []string{"/srv/logs/app.out"}},
		{Notable, []string{"/tmp/a.txt"}},
		{Unimportant, nil},
		{Uncategorized, []string{"/data/x"}},
	}
	for _, c := range checks {
		got := append([]string(nil), result.Bucket(c.bucket).Born...)
		sort.Strings(got)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s born: want %#v, got %#v", c.bucket, c.want, got)
		}
	}
}

func TestCategorizeIsStrictPartition(t *testing.T) {
	rules := defaultRules(t)
	in := []events.FileEvent{
		{Path: "/etc/passwd", Kind: events.Modified},
		{Path: "/tmp/build/out.o", Kind: events.Born},
		{Path: "/proc/1/status", Kind: events.Changed},
		{Path: "/opt/app/app.log", Kind: events.Accessed},
		{Path: "/weird/place", Kind: events.Modified},
		{Path: "/usr/share/doc/x", Kind: events.Accessed},
	}

	result := Categorize(in, rules)
	if result.Count() != len(in) {
		t.Fatalf("Count() = %d, want %d", result.Count(), len(in))
	}

	seen := map[events.FileEvent]int{}
	for _, b := range Buckets() {
		lists := result.Bucket(b)
		for _, k := range events.Kinds() {
			for _, p := range *lists.Of(k) {
				seen[events.FileEvent{Path: p, Kind: k}]++
			}
		}
	}
	for _, e := range in {
		if seen[e] != 1 {
			t.Errorf("%v appears %d times, want exactly once", e, seen[e])
		}
	}
}

func TestCategorizeIgnoredBeatsKind(t *testing.T) {
	rules := []Rule{
		{Bucket: Ignored, Match: under([]string{"/a"})},
		{Bucket: Key, Match: under([]string{"/a/b"})},
	}
	result := Categorize([]events.FileEvent{{Path: "/a/b/c", Kind: events.Changed}}, rules)
	if !reflect.DeepEqual(result.Ignored.Changed, []string{"/a/b/c"}) {
		t.Fatalf("want ignored, got %#v", result)
	}
	if result.Key.Len() != 0 {
		t.Fatalf("key should be empty, got %#v", result.Key)
	}
}

func TestCategorizeKeepsKindsApart(t *testing.T) {
	rules := []Rule{{Bucket: Key, Match: under([]string{"/etc"})}}
	result := Categorize([]events.FileEvent{
		{Path: "/etc/a", Kind: events.Born},
		{Path: "/etc/b", Kind: events.Modified},
		{Path: "/etc/c", Kind: events.Changed},
		{Path: "/etc/d", Kind: events.Accessed},
	}, rules)

	want := KindLists{
		Born:     []string{"/etc/a"},
		Modified: []string{"/etc/b"},
		Changed:  []string{"/etc/c"},
		Accessed: []string{"/etc/d"},
	}
	if !reflect.DeepEqual(result.Key, want) {
		t.Fatalf("want %#v, got %#v", want, result.Key)
	}
	if result.Uncategorized.Len() != 0 {
		t.Fatalf("nothing should be left, got %#v", result.Uncategorized)
	}
}

func TestPartitionIsStable(t *testing.T) {
	claimed, rest := partition([]string{"a1", "b1", "a2", "b2"}, func(s string) bool { return s[0] == 'a' })
	if !reflect.DeepEqual(claimed, []string{"a1", "a2"}) || !reflect.DeepEqual(rest, []string{"b1", "b2"}) {
		t.Fatalf("claimed=%#v rest=%#v", claimed, rest)
	}
}

func TestRulesRejectBadGlob(t *testing.T) {
	cfg := config.Default()
	cfg.IgnoredFiles = []string{"/var/[unterminated"}
	if _, err := Rules(&cfg); err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestIgnoredFileGlob(t *testing.T) {
	cfg := config.Configuration{IgnoredFiles: []string{"/home/*/.bash_history"}}
	rules, err := Rules(&cfg)
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	result := Categorize(born("/home/alice/.bash_history", "/home/alice/notes/.bash_history"), rules)
	if !reflect.DeepEqual(result.Ignored.Born, []string{"/home/alice/.bash_history"}) {
		t.Fatalf("Ignored.Born = %#v", result.Ignored.Born)
	}
	if !reflect.DeepEqual(result.Uncategorized.Born, []string{"/home/alice/notes/.bash_history"}) {
		t.Fatalf("Uncategorized.Born = %#v", result.Uncategorized.Born)
	}
}
