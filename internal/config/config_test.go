package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hayeah/dirproject/fzf"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal("*", cfg.Filter)
	assert.Equal(fzf.WordSubsequence, cfg.SearchType)
	assert.Empty(cfg.IgnoreList())
	assert.NoError(cfg.Validate())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := writeConfig(t, dir, `
ignore = "CVS, .svn,,node_modules "
filter = "*.go"
search_type = "char"
gitignore = true
debounce = "250ms"
log_level = "debug"
`)

	cfg, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]string{"CVS", ".svn", "node_modules"}, cfg.IgnoreList())
	assert.Equal("*.go", cfg.Filter)
	assert.Equal(fzf.CharSubsequence, cfg.SearchType)
	assert.True(cfg.GitIgnore)
	assert.False(cfg.Hidden)
	assert.Equal(250*time.Millisecond, cfg.Debounce)

	opts := cfg.FilterOptions(dir)
	assert.Equal(dir, opts.RootPath)
	assert.Equal([]string{"CVS", ".svn", "node_modules"}, opts.IgnoredNames)
	assert.True(opts.GitIgnore)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `ignore = `},
		{"bad mode", `search_type = "fuzzy"`},
		{"bad glob", `filter = "[a-"`},
		{"bad level", `log_level = "loud"`},
		{"unknown key", `finder_size = "400x300"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)

	empty := t.TempDir()
	cfg, err := Resolve("", empty)
	assert.NoError(err)
	assert.Equal(Default(), cfg)

	dir := t.TempDir()
	writeConfig(t, dir, `search_type = "exact"`)
	cfg, err = Resolve("", dir)
	assert.NoError(err)
	assert.Equal(fzf.Exact, cfg.SearchType)
	assert.Equal("*", cfg.Filter, "missing keys keep their defaults")

	_, err = Resolve(filepath.Join(empty, "missing.toml"), dir)
	assert.Error(err, "an explicit path must exist")
}

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)

	level, err := ParseLevel("warn")
	assert.NoError(err)
	assert.Equal(slog.LevelWarn, level)

	level, err = ParseLevel("DEBUG")
	assert.NoError(err)
	assert.Equal(slog.LevelDebug, level)

	_, err = ParseLevel("")
	assert.Error(err)
}
