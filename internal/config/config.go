// Package config reads the project configuration file. The file is never
// written back.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/hayeah/dirproject/fzf"
	"github.com/hayeah/dirproject/ignore"
	"github.com/hayeah/dirproject/watch"
)

// FileName is looked up in the project root when no config path is given.
const FileName = ".dirproject.toml"

// Config is the project configuration.
type Config struct {
	// Ignore is a comma-separated list of entry names never included.
	Ignore string `toml:"ignore"`
	// Filter is the glob file names must match.
	Filter string `toml:"filter"`
	// SearchType is exact, char or word.
	SearchType fzf.Mode `toml:"search_type"`

	GitIgnore bool          `toml:"gitignore"`
	Hidden    bool          `toml:"hidden"`
	Debounce  time.Duration `toml:"debounce"`
	LogLevel  string        `toml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Ignore:     "",
		Filter:     ignore.DefaultNameGlob,
		SearchType: fzf.DefaultMode,
		Debounce:   watch.DefaultDebounce,
		LogLevel:   "info",
	}
}

// Load decodes the TOML file at path over the defaults. Unknown keys are an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads path if given, otherwise root/FileName if it exists, otherwise
// the defaults.
func Resolve(path, root string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	candidate := filepath.Join(root, FileName)
	if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(candidate)
}

// Validate checks the glob and the log level.
func (c *Config) Validate() error {
	if _, err := ignore.New(ignore.Options{NameGlob: c.Filter}); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	return nil
}

// IgnoreList splits Ignore on commas, trimming blanks and dropping empties.
func (c *Config) IgnoreList() []string {
	var names []string
	for _, name := range strings.Split(c.Ignore, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// FilterOptions returns the ignore options for a project rooted at root.
func (c *Config) FilterOptions(root string) ignore.Options {
	return ignore.Options{
		IgnoredNames: c.IgnoreList(),
		NameGlob:     c.Filter,
		IgnoreHidden: c.Hidden,
		GitIgnore:    c.GitIgnore,
		RootPath:     root,
	}
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
