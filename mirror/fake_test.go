package mirror

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// fakeFS is an in-memory Lister. Directory children keep insertion order so
// listings are deterministic.
type fakeFS struct {
	dirs  map[string][]string
	files map[string]bool
	errs  map[string]error
}

func newFakeFS(root string, paths ...string) *fakeFS {
	fs := &fakeFS{
		dirs:  map[string][]string{root: nil},
		files: map[string]bool{},
		errs:  map[string]error{},
	}
	for _, p := range paths {
		fs.add(p)
	}
	return fs
}

// add creates p under an existing parent. A trailing slash makes a directory.
func (fs *fakeFS) add(p string) {
	isDir := strings.HasSuffix(p, "/")
	p = filepath.Clean(p)
	parent := filepath.Dir(p)
	if _, ok := fs.dirs[parent]; !ok {
		panic(fmt.Sprintf("fakeFS: no parent directory for %s", p))
	}
	fs.dirs[parent] = append(fs.dirs[parent], filepath.Base(p))
	if isDir {
		fs.dirs[p] = nil
	} else {
		fs.files[p] = true
	}
}

func (fs *fakeFS) remove(p string) {
	parent := filepath.Dir(p)
	fs.dirs[parent] = slices.DeleteFunc(fs.dirs[parent], func(name string) bool {
		return name == filepath.Base(p)
	})
	for _, name := range fs.dirs[p] {
		fs.remove(filepath.Join(p, name))
	}
	delete(fs.dirs, p)
	delete(fs.files, p)
}

func (fs *fakeFS) ListDirectory(path string) ([]DirEntry, error) {
	if err, ok := fs.errs[path]; ok {
		return nil, err
	}
	names, ok := fs.dirs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	entries := make([]DirEntry, 0, len(names))
	for _, name := range names {
		full := filepath.Join(path, name)
		_, isDir := fs.dirs[full]
		entries = append(entries, DirEntry{Name: name, FullPath: full, IsDir: isDir})
	}
	return entries, nil
}

func (fs *fakeFS) Stat(path string) (bool, bool) {
	if _, ok := fs.dirs[path]; ok {
		return true, true
	}
	return fs.files[path], false
}

// countingWatcher tracks registrations per path.
type countingWatcher struct {
	active map[string]int
	calls  int
}

func newCountingWatcher() *countingWatcher {
	return &countingWatcher{active: map[string]int{}}
}

func (w *countingWatcher) Watch(path string) error {
	w.calls++
	w.active[path]++
	return nil
}

func (w *countingWatcher) Unwatch(path string) error {
	w.active[path]--
	if w.active[path] == 0 {
		delete(w.active, path)
	}
	return nil
}

func (w *countingWatcher) paths() []string {
	var out []string
	for p := range w.active {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// failingWatcher rejects registrations while fail is set and records
// unregistrations of paths it never accepted.
type failingWatcher struct {
	*countingWatcher
	fail  bool
	stray []string
}

func newFailingWatcher() *failingWatcher {
	return &failingWatcher{countingWatcher: newCountingWatcher(), fail: true}
}

func (w *failingWatcher) Watch(path string) error {
	if w.fail {
		return errors.New("no space left on device")
	}
	return w.countingWatcher.Watch(path)
}

func (w *failingWatcher) Unwatch(path string) error {
	if _, ok := w.active[path]; !ok {
		w.stray = append(w.stray, path)
		return errors.New("path is not watched")
	}
	return w.countingWatcher.Unwatch(path)
}
