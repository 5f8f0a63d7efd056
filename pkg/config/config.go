// Package config holds the immutable configuration of a scan.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var ErrInvalidRoot = errors.New("not a valid directory")

// Categories are the directory prefix lists used to bucket files.
type Categories struct {
	Ignored     []string `yaml:"ignored"`
	Unimportant []string `yaml:"unimportant"`
	Notable     []string `yaml:"notable"`
	Key         []string `yaml:"key"`
}

// Configuration is built once and never mutated afterwards.
type Configuration struct {
	LogDir       string        `yaml:"log_dir"`
	Roots        []string      `yaml:"roots"`
	IgnoredFiles []string      `yaml:"ignored_files"`
	Dirs         Categories    `yaml:"dirs"`
	Skew         time.Duration `yaml:"skew"`
}

// Default returns the built-in configuration.
func Default() Configuration {
	return Configuration{
		LogDir: "/tmp/disk-diff",
		Roots:  []string{"/"},
		IgnoredFiles: []string{
			"/var/lib/rsyslog/imjournal.state",
		},
		Dirs: Categories{
			Ignored: []string{
				// permission issues
				"/mnt",
				// very large and rarely relevant
				"/proc",
				"/sys",
				"/var/lib/docker",
				// clutter
				"/root/.vscode-server",
				"/run/docker/runtime-runc",
				"/run/log/journal",
				// everything unimportant is ignored for now
				"/dev",
				"/run",
				"/usr/lib/.build-id",
				"/var/cache",
				"/var/run",
			},
			Unimportant: []string{
				"/dev",
				"/run",
				"/usr/lib/.build-id",
				"/var/cache",
				"/var/run",
			},
			Notable: []string{
				"/lib",
				"/tmp",
				"/usr/include",
				"/usr/lib",
				"/usr/share",
				"/usr/src",
			},
			Key: []string{
				"/usr/local",
				"/var",
				"/root",
				"/home",
				"/opt",
				"/etc",
				"/bin",
				"/sbin",
				"/usr/bin",
				"/usr/sbin",
				"/usr/local/bin",
				"/usr/local/sbin",
				"/usr/lib/systemd/system",
			},
		},
		Skew: 20 * time.Millisecond,
	}
}

// SetDefaults registers Default() on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_dir", d.LogDir)
	v.SetDefault("roots", d.Roots)
	v.SetDefault("ignored_files", d.IgnoredFiles)
	v.SetDefault("dirs.ignored", d.Dirs.Ignored)
	v.SetDefault("dirs.unimportant", d.Dirs.Unimportant)
	v.SetDefault("dirs.notable", d.Dirs.Notable)
	v.SetDefault("dirs.key", d.Dirs.Key)
	v.SetDefault("skew", d.Skew)
}

// FromViper builds a Configuration from v. Paths starting with ~ are expanded.
func FromViper(v *viper.Viper) (*Configuration, error) {
	var err error
	cfg := &Configuration{Skew: v.GetDuration("skew")}

	if cfg.LogDir, err = expand(v.GetString("log_dir")); err != nil {
		return nil, err
	}
	lists := []struct {
		key string
		dst *[]string
	}{
		{"roots", &cfg.Roots},
		{"ignored_files", &cfg.IgnoredFiles},
		{"dirs.ignored", &cfg.Dirs.Ignored},
		{"dirs.unimportant", &cfg.Dirs.Unimportant},
		{"dirs.notable", &cfg.Dirs.Notable},
		{"dirs.key", &cfg.Dirs.Key},
	}
	for _, l := range lists {
		if *l.dst, err = expandAll(v.GetStringSlice(l.key)); err != nil {
			return nil, fmt.Errorf("%s: %w", l.key, err)
		}
	}

	if cfg.Roots, err = absAll(cfg.Roots); err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}

	if cfg.LogDir == "" {
		return nil, errors.New("log_dir must not be empty")
	}
	if cfg.Skew < 0 {
		return nil, fmt.Errorf("skew must not be negative, got %s", cfg.Skew)
	}
	return cfg, nil
}

// WithRoots returns a copy of c scanning roots instead of the configured ones.
// An empty roots leaves c's roots in place.
func (c *Configuration) WithRoots(roots []string) (*Configuration, error) {
	cp := *c
	if len(roots) == 0 {
		return &cp, nil
	}
	expanded, err := expandAll(roots)
	if err != nil {
		return nil, err
	}
	if cp.Roots, err = absAll(expanded); err != nil {
		return nil, err
	}
	return &cp, nil
}

func absAll(ps []string) ([]string, error) {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", p, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// ValidateRoots checks that every root exists and is a directory.
func ValidateRoots(roots []string) error {
	if len(roots) == 0 {
		return fmt.Errorf("no directories to check: %w", ErrInvalidRoot)
	}
	for _, r := range roots {
		info, err := os.Stat(r)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s: %w", r, ErrInvalidRoot)
		}
	}
	return nil
}

func expand(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	e, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return filepath.Clean(e), nil
}

func expandAll(ps []string) ([]string, error) {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		e, err := expand(p)
		if err != nil {
			return nil, err
		}
		if e != "" {
			out = append(out, e)
		}
	}
	return out, nil
}
