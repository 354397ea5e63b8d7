// Package ignore decides which directory entries are materialized in a mirror.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultNameGlob materializes every file.
const DefaultNameGlob = "*"

// Options configures a Filter.
type Options struct {
	// IgnoredNames are exact, case-sensitive entry names that are never included.
	IgnoredNames []string
	// NameGlob is a shell glob applied to file names only. Empty means DefaultNameGlob.
	NameGlob string
	// IgnoreHidden excludes entries whose name starts with a dot.
	IgnoreHidden bool
	// GitIgnore honors .gitignore files found under RootPath and skips .git directories.
	// Patterns are read by New and again on each ReloadPatterns call.
	GitIgnore bool
	// RootPath anchors gitignore patterns. Required when GitIgnore is set.
	RootPath string
}

// Filter is the inclusion predicate applied before an entry becomes a node.
type Filter struct {
	names        map[string]struct{}
	glob         string
	ignoreHidden bool

	matcher  gitignore.Matcher
	rootPath string
}

// New builds a Filter, validating the glob and loading gitignore patterns when enabled.
func New(opts Options) (*Filter, error) {
	glob := strings.TrimSpace(opts.NameGlob)
	if glob == "" {
		glob = DefaultNameGlob
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid name glob %q", glob)
	}

	f := &Filter{
		names:        make(map[string]struct{}, len(opts.IgnoredNames)),
		glob:         glob,
		ignoreHidden: opts.IgnoreHidden,
	}
	for _, name := range opts.IgnoredNames {
		if name == "" {
			continue
		}
		f.names[name] = struct{}{}
	}

	if opts.GitIgnore {
		if opts.RootPath == "" {
			return nil, fmt.Errorf("gitignore rules need a root path")
		}
		f.rootPath = opts.RootPath
		if err := f.ReloadPatterns(); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// ReloadPatterns re-reads every .gitignore under the root path. It does nothing
// when gitignore rules are off. On error the previous patterns stay in effect.
func (f *Filter) ReloadPatterns() error {
	if f.rootPath == "" {
		return nil
	}
	patterns, err := gitignore.ReadPatterns(osfs.New(f.rootPath), []string{})
	if err != nil {
		return fmt.Errorf("failed to read gitignore patterns: %w", err)
	}
	f.matcher = gitignore.NewMatcher(patterns)
	return nil
}

// NameGlob returns the effective file glob.
func (f *Filter) NameGlob() string {
	return f.glob
}

// Passes reports whether an entry called name may be included. It is a pure
// function of the name: "." and ".." never pass, neither do ignored names.
func (f *Filter) Passes(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	if _, ignored := f.names[name]; ignored {
		return false
	}
	if f.ignoreHidden && strings.HasPrefix(name, ".") {
		return false
	}
	return true
}

// PassesFile is Passes plus the name glob. Only file entries go through here.
func (f *Filter) PassesFile(name string) bool {
	if !f.Passes(name) {
		return false
	}
	ok, err := doublestar.Match(f.glob, name)
	return err == nil && ok
}

// PassesPath applies every rule to an entry at fullPath. Directories are never
// checked against the glob.
func (f *Filter) PassesPath(fullPath string, isDir bool) bool {
	name := filepath.Base(fullPath)
	if isDir {
		if !f.Passes(name) {
			return false
		}
	} else if !f.PassesFile(name) {
		return false
	}
	return !f.gitIgnored(fullPath, isDir)
}

func (f *Filter) gitIgnored(fullPath string, isDir bool) bool {
	if f.matcher == nil {
		return false
	}
	if isDir && filepath.Base(fullPath) == ".git" {
		return true
	}

	relPath, err := filepath.Rel(f.rootPath, fullPath)
	if err != nil || relPath == "." || strings.HasPrefix(relPath, "..") {
		return false
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return f.matcher.Match(parts, isDir)
}
