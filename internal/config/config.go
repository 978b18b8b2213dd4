// Package config loads quill.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"

	qerrors "github.com/quill-lang/quill/internal/errors"
)

// LanguageVersion is the version of the language this front end accepts.
const LanguageVersion = "0.1.0"

// FileName is the configuration file looked up in a project directory.
const FileName = "quill.toml"

// Config is the project configuration.
type Config struct {
	Language    LanguageConfig    `toml:"language"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Driver      DriverConfig      `toml:"driver"`

	// Dir is the directory the file was loaded from; relative include paths
	// are resolved against it.
	Dir string `toml:"-"`
}

// LanguageConfig pins the language version a project is written against.
type LanguageConfig struct {
	Version string `toml:"version"`
}

// DiagnosticsConfig controls error reporting.
type DiagnosticsConfig struct {
	Color     string `toml:"color"`
	MaxErrors int    `toml:"max_errors"`
}

// DriverConfig controls multi-file parsing.
type DriverConfig struct {
	FollowIncludes bool     `toml:"follow_includes"`
	IncludePaths   []string `toml:"include_paths"`
	Jobs           int      `toml:"jobs"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Diagnostics: DiagnosticsConfig{Color: "auto"},
		Driver:      DriverConfig{FollowIncludes: true, Jobs: 4},
		Dir:         ".",
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, qerrors.ReadFailure(path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, qerrors.InvalidConfig(path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, qerrors.InvalidConfig(path, fmt.Errorf("unknown key %s", undecoded[0]))
	}
	if err := cfg.Validate(); err != nil {
		if se, ok := err.(*qerrors.StandardError); ok {
			return nil, se
		}
		return nil, qerrors.InvalidConfig(path, err)
	}
	return cfg, nil
}

// Find loads quill.toml from dir or the nearest parent directory that has
// one. Defaults rooted at dir are returned when none exists.
func Find(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, qerrors.ReadFailure(dir, err)
	}
	for d := abs; ; d = filepath.Dir(d) {
		path := filepath.Join(d, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	cfg := Default()
	cfg.Dir = dir
	return cfg, nil
}

// Validate checks value ranges and the language version constraint.
func (c *Config) Validate() error {
	switch c.Diagnostics.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("diagnostics.color must be auto, always or never, got %q", c.Diagnostics.Color)
	}
	if c.Diagnostics.MaxErrors < 0 {
		return fmt.Errorf("diagnostics.max_errors must not be negative")
	}
	if c.Driver.Jobs < 0 {
		return fmt.Errorf("driver.jobs must not be negative")
	}
	return CheckLanguageVersion(c.Language.Version)
}

// CheckLanguageVersion reports whether LanguageVersion satisfies the
// constraint. An empty constraint accepts any version.
func CheckLanguageVersion(constraint string) error {
	if constraint == "" {
		return nil
	}
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("language.version: %w", err)
	}
	v := semver.MustParse(LanguageVersion)
	if !cons.Check(v) {
		return qerrors.UnsupportedLanguageVersion(LanguageVersion, constraint)
	}
	return nil
}

// IncludeDirs returns the configured include paths resolved against Dir.
func (c *Config) IncludeDirs() []string {
	dirs := make([]string, 0, len(c.Driver.IncludePaths))
	for _, p := range c.Driver.IncludePaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir, p)
		}
		dirs = append(dirs, p)
	}
	return dirs
}
