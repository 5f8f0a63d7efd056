package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	want := Default()
	if !reflect.DeepEqual(*cfg, want) {
		t.Fatalf("unexpected config.\nwant: %#v\ngot:  %#v", want, *cfg)
	}
}

func TestFromViperReadsYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	raw := `
log_dir: /var/tmp/dd/
roots: ["/srv", "/opt"]
skew: 50ms
dirs:
  key: ["/srv/app"]
`
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.LogDir != "/var/tmp/dd" {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if !reflect.DeepEqual(cfg.Roots, []string{"/srv", "/opt"}) {
		t.Errorf("Roots = %#v", cfg.Roots)
	}
	if !reflect.DeepEqual(cfg.Dirs.Key, []string{"/srv/app"}) {
		t.Errorf("Dirs.Key = %#v", cfg.Dirs.Key)
	}
	if !reflect.DeepEqual(cfg.Dirs.Notable, Default().Dirs.Notable) {
		t.Errorf("Dirs.Notable should keep its default, got %#v", cfg.Dirs.Notable)
	}
	if cfg.Skew != 50*time.Millisecond {
		t.Errorf("Skew = %v", cfg.Skew)
	}
}

func TestFromViperRejectsNegativeSkew(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("skew", "-1s")
	if _, err := FromViper(v); err == nil {
		t.Fatal("expected an error for a negative skew")
	}
}

func TestWithRootsOverridesWithoutMutating(t *testing.T) {
	base := Default()
	dir := t.TempDir()

	got, err := base.WithRoots([]string{dir})
	if err != nil {
		t.Fatalf("WithRoots: %v", err)
	}
	if !reflect.DeepEqual(got.Roots, []string{dir}) {
		t.Fatalf("Roots = %#v", got.Roots)
	}
	if !reflect.DeepEqual(base.Roots, []string{"/"}) {
		t.Fatalf("base config was mutated: %#v", base.Roots)
	}

	same, err := base.WithRoots(nil)
	if err != nil {
		t.Fatalf("WithRoots(nil): %v", err)
	}
	if !reflect.DeepEqual(same.Roots, base.Roots) {
		t.Fatalf("empty override should keep roots, got %#v", same.Roots)
	}
}

func TestValidateRoots(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateRoots([]string{dir}); err != nil {
		t.Fatalf("valid root rejected: %v", err)
	}
	for _, bad := range [][]string{
		{filepath.Join(dir, "missing")},
		{dir, file},
		nil,
	} {
		if err := ValidateRoots(bad); !errors.Is(err, ErrInvalidRoot) {
			t.Errorf("ValidateRoots(%v) = %v, want ErrInvalidRoot", bad, err)
		}
	}
}

func TestFromViperMakesRootsAbsolute(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("roots", []string{"relative/dir", "/srv"})

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(wd, "relative", "dir"), "/srv"}
	if !reflect.DeepEqual(cfg.Roots, want) {
		t.Fatalf("Roots = %#v, want %#v", cfg.Roots, want)
	}
}
