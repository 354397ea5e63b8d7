package mirror

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"

	"github.com/samber/lo"

	"github.com/hayeah/dirproject/internal/set"
)

// Result lists the direct children of a reconciled directory that were
// materialized or removed. Entries rejected by the filter are not counted.
type Result struct {
	Path    string
	Added   []string
	Removed []string
}

// Empty reports whether the reconcile changed nothing.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// Synchronizer builds and repairs a Mirror against real directory listings.
// It is not safe for concurrent use; callers serialize Reconcile and
// RemoveSubtree around the whole tree.
type Synchronizer struct {
	mirror  *Mirror
	lister  Lister
	watcher Watcher
	filter  Filter
	log     *slog.Logger

	watched map[string]struct{}
	// directories whose last listing held a GitIgnoreFile
	ruleDirs map[string]struct{}
}

// NewSynchronizer wires a synchronizer for m.
func NewSynchronizer(m *Mirror, lister Lister, watcher Watcher, filter Filter, logger *slog.Logger) *Synchronizer {
	if watcher == nil {
		watcher = NopWatcher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		mirror:   m,
		lister:   lister,
		watcher:  watcher,
		filter:   filter,
		log:      logger,
		watched:  make(map[string]struct{}),
		ruleDirs: make(map[string]struct{}),
	}
}

// Mirror returns the tree being synchronized.
func (s *Synchronizer) Mirror() *Mirror {
	return s.mirror
}

// Watched returns the directories currently registered with the watcher, sorted.
func (s *Synchronizer) Watched() []string {
	paths := lo.Keys(s.watched)
	sort.Strings(paths)
	return paths
}

// BuildSubtree loads rootPath into an empty mirror, replacing whatever was
// there. A rebuild re-reads the filter's patterns first. Subdirectories are materialized before files at every level.
func (s *Synchronizer) BuildSubtree(rootPath string) (*Node, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRoot, rootPath, err)
	}

	exists, isDir := s.lister.Stat(abs)
	if !exists {
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, abs)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}

	if s.mirror.Root() != nil {
		s.reloadPatterns(abs)
	}
	s.Close()

	root := newNode(abs, true)
	s.mirror.setRoot(root)
	s.watch(root.FullPath)
	s.fill(root)

	s.log.Debug("mirror built", "root", abs, "nodes", s.mirror.Len())
	return root, nil
}

// Reconcile re-syncs the children of dirtyPath with the real directory.
// A missing node returns ErrNotFound and leaves the mirror untouched, as does
// a failed listing of dirtyPath itself.
func (s *Synchronizer) Reconcile(dirtyPath string) (Result, error) {
	dirtyPath = filepath.Clean(dirtyPath)
	res := Result{Path: dirtyPath}

	node, ok := s.mirror.Find(dirtyPath)
	if !ok || !node.IsDir {
		s.log.Debug("reconcile: directory not mirrored", "path", dirtyPath)
		return res, fmt.Errorf("reconcile %s: %w", dirtyPath, ErrNotFound)
	}

	// retry registrations that failed earlier
	s.watch(node.FullPath)
	for _, child := range node.Children {
		if child.IsDir {
			s.watch(child.FullPath)
		}
	}

	entries, err := s.lister.ListDirectory(dirtyPath)
	if err != nil {
		s.log.Warn("reconcile: listing failed", "path", dirtyPath, "error", err)
		return res, fmt.Errorf("reconcile %s: %w", dirtyPath, err)
	}

	actual := set.New[string]()
	byPath := make(map[string]DirEntry, len(entries))
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		e.FullPath = filepath.Clean(e.FullPath)
		actual.Add(e.FullPath)
		byPath[e.FullPath] = e
	}
	mirrored := set.FromSlice(node.ChildPaths())

	s.noteRules(dirtyPath, entries, true)

	// An entry that changed kind under the same name is replaced.
	for _, child := range slices.Clone(node.Children) {
		if e, ok := byPath[child.FullPath]; ok && e.IsDir != child.IsDir {
			s.removeNode(child)
			mirrored.Remove(child.FullPath)
			res.Removed = append(res.Removed, child.FullPath)
		}
	}

	toAdd := actual.Difference(mirrored).Values()
	toRemove := mirrored.Difference(actual).Values()

	isDirPath := func(p string, _ int) bool { return byPath[p].IsDir }
	for _, p := range append(lo.Filter(toAdd, isDirPath), lo.Reject(toAdd, isDirPath)...) {
		if s.materialize(node, byPath[p]) {
			res.Added = append(res.Added, p)
		}
	}

	for _, p := range toRemove {
		if err := s.RemoveSubtree(p); err != nil {
			continue
		}
		res.Removed = append(res.Removed, p)
	}

	if !res.Empty() {
		s.log.Info("reconciled", "path", dirtyPath, "added", len(res.Added), "removed", len(res.Removed))
	}
	return res, nil
}

// RemoveSubtree detaches the node at fullPath and all of its descendants,
// unregistering every directory watch on the way.
func (s *Synchronizer) RemoveSubtree(fullPath string) error {
	fullPath = filepath.Clean(fullPath)
	node, ok := s.mirror.Find(fullPath)
	if !ok {
		s.log.Debug("remove: node not mirrored", "path", fullPath)
		return fmt.Errorf("remove %s: %w", fullPath, ErrNotFound)
	}
	s.removeNode(node)
	return nil
}

// Close removes the whole tree.
func (s *Synchronizer) Close() {
	if root := s.mirror.Root(); root != nil {
		s.removeNode(root)
	}
}

func (s *Synchronizer) removeNode(n *Node) {
	// snapshot: removing a child mutates n.Children
	for _, c := range slices.Clone(n.Children) {
		s.removeNode(c)
	}
	s.mirror.detach(n)
	if n.IsDir {
		s.unwatch(n.FullPath)
		delete(s.ruleDirs, n.FullPath)
	}
}

// fill lists dir and materializes its entries, directories first. A listing
// failure skips this subtree only.
func (s *Synchronizer) fill(dir *Node) {
	entries, err := s.lister.ListDirectory(dir.FullPath)
	if err != nil {
		s.log.Warn("skipping unreadable directory", "path", dir.FullPath, "error", err)
		return
	}
	s.noteRules(dir.FullPath, entries, false)

	isDir := func(e DirEntry, _ int) bool { return e.IsDir }
	for _, e := range lo.Filter(entries, isDir) {
		s.materialize(dir, e)
	}
	for _, e := range lo.Reject(entries, isDir) {
		s.materialize(dir, e)
	}
}

// materialize turns one listing entry into a node under parent, recursing into
// directories. It reports whether a node was created.
func (s *Synchronizer) materialize(parent *Node, e DirEntry) bool {
	if e.Name == "." || e.Name == ".." {
		return false
	}
	fullPath := filepath.Clean(e.FullPath)
	if !s.filter.PassesPath(fullPath, e.IsDir) {
		return false
	}

	n := newNode(fullPath, e.IsDir)
	if err := s.mirror.attach(parent, n); err != nil {
		s.log.Warn("skipping entry", "path", fullPath, "error", err)
		return false
	}
	if n.IsDir {
		s.watch(n.FullPath)
		s.fill(n)
	}
	return true
}

// noteRules tracks which directories carry a GitIgnoreFile. On reconcile, a
// listing that holds one (it may have been edited) or lost one reloads the
// filter's patterns before any entry is materialized.
func (s *Synchronizer) noteRules(dir string, entries []DirEntry, reconcile bool) {
	if _, ok := s.filter.(PatternReloader); !ok {
		return
	}
	_, had := s.ruleDirs[dir]
	has := lo.ContainsBy(entries, func(e DirEntry) bool {
		return e.Name == GitIgnoreFile && !e.IsDir
	})
	if has {
		s.ruleDirs[dir] = struct{}{}
	} else {
		delete(s.ruleDirs, dir)
	}
	if reconcile && (has || had) {
		s.reloadPatterns(dir)
	}
}

func (s *Synchronizer) reloadPatterns(dir string) {
	reloader, ok := s.filter.(PatternReloader)
	if !ok {
		return
	}
	if err := reloader.ReloadPatterns(); err != nil {
		s.log.Warn("reloading ignore patterns failed", "path", dir, "error", err)
		return
	}
	s.log.Debug("ignore patterns reloaded", "path", dir)
}

// watch registers path once. A failed registration is not recorded, so a
// later reconcile of the directory or its parent tries again.
func (s *Synchronizer) watch(path string) {
	if _, ok := s.watched[path]; ok {
		return
	}
	if err := s.watcher.Watch(path); err != nil {
		s.log.Warn("watch failed", "path", path, "error", err)
		return
	}
	s.watched[path] = struct{}{}
}

func (s *Synchronizer) unwatch(path string) {
	if _, ok := s.watched[path]; !ok {
		return
	}
	delete(s.watched, path)
	if err := s.watcher.Unwatch(path); err != nil {
		s.log.Debug("unwatch failed", "path", path, "error", err)
	}
}
