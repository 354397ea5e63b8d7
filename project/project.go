// Package project ties one mirrored directory tree to its search session.
package project

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/hayeah/dirproject/fzf"
	"github.com/hayeah/dirproject/ignore"
	"github.com/hayeah/dirproject/internal/config"
	"github.com/hayeah/dirproject/mirror"
	"github.com/hayeah/dirproject/search"
)

// Project is an open directory project. All methods are safe for concurrent
// use; reconciles and search updates are serialized around the whole tree.
type Project struct {
	mu sync.Mutex

	root    string
	cfg     *config.Config
	log     *slog.Logger
	mirror  *mirror.Mirror
	sync    *mirror.Synchronizer
	session *search.Session
}

// Open builds the mirror for root and starts a search session over its files.
// watcher may be nil when no change notification is wanted.
func Open(root string, cfg *config.Config, lister mirror.Lister, watcher mirror.Watcher, logger *slog.Logger) (*Project, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mirror.ErrInvalidRoot, root, err)
	}

	filter, err := ignore.New(cfg.FilterOptions(abs))
	if err != nil {
		return nil, fmt.Errorf("failed to build ignore filter: %w", err)
	}

	m := mirror.New()
	p := &Project{
		root:   abs,
		cfg:    cfg,
		log:    logger.With("root", abs),
		mirror: m,
	}
	p.sync = mirror.NewSynchronizer(m, lister, watcher, filter, p.log)

	if _, err := p.sync.BuildSubtree(abs); err != nil {
		return nil, err
	}
	p.session = search.NewSession(labelOrder(m.Files()), cfg.SearchType)

	visible, total := p.session.Counts()
	p.log.Info("project opened", "files", total, "visible", visible, "nodes", m.Len())
	return p, nil
}

// Root returns the absolute project root.
func (p *Project) Root() string {
	return p.root
}

// Config returns the configuration the project was opened with.
func (p *Project) Config() *config.Config {
	return p.cfg
}

// OnDirectoryChanged reconciles dir and refreshes the search list. A dir that
// is no longer mirrored returns mirror.ErrNotFound and changes nothing.
func (p *Project) OnDirectoryChanged(dir string) (mirror.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	res, err := p.sync.Reconcile(dir)
	if err != nil {
		return res, err
	}
	if !res.Empty() {
		p.session.SetEntries(labelOrder(p.mirror.Files()))
	}
	return res, nil
}

// Reload rebuilds the mirror from scratch, keeping the query and mode.
func (p *Project) Reload() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.sync.BuildSubtree(p.root); err != nil {
		return err
	}
	p.session.SetEntries(labelOrder(p.mirror.Files()))
	p.log.Info("project reloaded", "nodes", p.mirror.Len())
	return nil
}

// Close drops the mirror and every watch registration.
func (p *Project) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sync.Close()
	p.session.SetEntries(nil)
}

// Search applies query to the session and returns the full paths of the
// visible files, ordered by file name.
func (p *Project) Search(query string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if query == "" {
		p.session.OnQueryCleared()
	} else {
		p.session.OnQueryChanged(query)
	}
	return paths(p.session.Visible())
}

// SetMode switches the search strategy.
func (p *Project) SetMode(mode fzf.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session.SetMode(mode)
}

// WithSession runs fn with exclusive access to the search session. Nodes
// reachable from the session must not be retained past fn.
func (p *Project) WithSession(fn func(s *search.Session)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.session)
}

// WriteTree writes the mirror as a tree diagram.
func (p *Project) WriteTree(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return mirror.WriteTree(w, p.mirror.Root())
}

// Files returns the full paths of every mirrored file in tree order.
func (p *Project) Files() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return paths(p.mirror.Files())
}

// labelOrder sorts files by name, the label the search list shows. Equal
// names fall back to the full path.
func labelOrder(files []*mirror.Node) []*mirror.Node {
	slices.SortStableFunc(files, func(a, b *mirror.Node) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.FullPath, b.FullPath)
	})
	return files
}

func paths(nodes []*mirror.Node) []string {
	return lo.Map(nodes, func(n *mirror.Node, _ int) string { return n.FullPath })
}

// Watched returns the directories registered with the watcher.
func (p *Project) Watched() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sync.Watched()
}
