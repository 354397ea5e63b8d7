package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Passes(t *testing.T) {
	f, err := New(Options{IgnoredNames: []string{"node_modules", "CVS", ""}})
	if !assert.NoError(t, err) {
		return
	}

	tests := []struct {
		name string
		want bool
	}{
		{".", false},
		{"..", false},
		{"node_modules", false},
		{"CVS", false},
		{"cvs", true},
		{"node_modules2", true},
		{".gitignore", true},
		{"main.go", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Passes(tt.name)
			assert.Equal(t, tt.want, got, "Passes(%q)", tt.name)
			assert.Equal(t, got, f.Passes(tt.name), "Passes is a pure function of the name")
		})
	}
}

func TestFilter_Hidden(t *testing.T) {
	assert := assert.New(t)

	f, err := New(Options{IgnoreHidden: true})
	assert.NoError(err)
	assert.False(f.Passes(".env"))
	assert.False(f.Passes("."))
	assert.True(f.Passes("env"))
}

func TestFilter_GlobOnlyAppliesToFiles(t *testing.T) {
	assert := assert.New(t)

	f, err := New(Options{NameGlob: "*.go"})
	assert.NoError(err)
	assert.Equal("*.go", f.NameGlob())

	assert.True(f.PassesFile("main.go"))
	assert.False(f.PassesFile("README.md"))

	assert.True(f.PassesPath("/proj/cmd", true), "directories never see the glob")
	assert.True(f.PassesPath("/proj/cmd/main.go", false))
	assert.False(f.PassesPath("/proj/README.md", false))
}

func TestFilter_DefaultGlob(t *testing.T) {
	assert := assert.New(t)

	f, err := New(Options{NameGlob: "  "})
	assert.NoError(err)
	assert.Equal(DefaultNameGlob, f.NameGlob())
	assert.True(f.PassesFile("anything.txt"))
	assert.True(f.PassesFile(".hidden"))
}

func TestFilter_InvalidGlob(t *testing.T) {
	_, err := New(Options{NameGlob: "[a-"})
	assert.Error(t, err)
}

func TestFilter_GitIgnore(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	assert.NoError(os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\nbuild/\n"), 0644))

	_, err := New(Options{GitIgnore: true})
	assert.Error(err, "gitignore needs a root")

	f, err := New(Options{GitIgnore: true, RootPath: root})
	if !assert.NoError(err) {
		return
	}

	assert.False(f.PassesPath(filepath.Join(root, "debug.log"), false))
	assert.False(f.PassesPath(filepath.Join(root, "build"), true))
	assert.False(f.PassesPath(filepath.Join(root, ".git"), true))
	assert.True(f.PassesPath(filepath.Join(root, "main.go"), false))
	assert.True(f.PassesPath(filepath.Join(root, "src"), true))
	assert.True(f.PassesPath(root, true), "the root itself is never gitignored")
}

func TestFilter_ReloadPatterns(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	f, err := New(Options{GitIgnore: true, RootPath: root})
	if !assert.NoError(err) {
		return
	}
	assert.True(f.PassesPath(filepath.Join(root, "out.tmp"), false))

	assert.NoError(os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.tmp\n"), 0644))
	assert.True(f.PassesPath(filepath.Join(root, "out.tmp"), false), "patterns are not re-read on their own")

	assert.NoError(f.ReloadPatterns())
	assert.False(f.PassesPath(filepath.Join(root, "out.tmp"), false))

	assert.NoError(os.Remove(filepath.Join(root, ".gitignore")))
	assert.NoError(f.ReloadPatterns())
	assert.True(f.PassesPath(filepath.Join(root, "out.tmp"), false))

	plain, err := New(Options{})
	assert.NoError(err)
	assert.NoError(plain.ReloadPatterns(), "no-op without gitignore rules")
}
