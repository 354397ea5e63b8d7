// Package mirror keeps an in-memory tree of a directory subtree and repairs it
// when a directory's contents change.
package mirror

import (
	"fmt"
	"path/filepath"
)

// Node is one entry of the mirrored tree.
type Node struct {
	Name     string
	FullPath string
	IsDir    bool
	// Visible is the search filter state. New nodes start visible.
	Visible  bool
	Children []*Node

	// parent is the FullPath of the owning directory, empty for the root.
	parent string
}

func newNode(fullPath string, isDir bool) *Node {
	return &Node{
		Name:     filepath.Base(fullPath),
		FullPath: fullPath,
		IsDir:    isDir,
		Visible:  true,
	}
}

// Parent returns the FullPath of the directory holding n, or "" for the root.
func (n *Node) Parent() string {
	return n.parent
}

// ChildPaths returns the FullPath of every direct child, in order.
func (n *Node) ChildPaths() []string {
	paths := make([]string, len(n.Children))
	for i, c := range n.Children {
		paths[i] = c.FullPath
	}
	return paths
}

// ChildNames returns the Name of every direct child, in order.
func (n *Node) ChildNames() []string {
	names := make([]string, len(n.Children))
	for i, c := range n.Children {
		names[i] = c.Name
	}
	return names
}

func (n *Node) indexOf(fullPath string) int {
	for i, c := range n.Children {
		if c.FullPath == fullPath {
			return i
		}
	}
	return -1
}

// Mirror owns the node tree and an index from FullPath to node.
type Mirror struct {
	root  *Node
	index map[string]*Node
}

// New returns an empty mirror.
func New() *Mirror {
	return &Mirror{
		index: make(map[string]*Node),
	}
}

// Root returns the root node, or nil when nothing is loaded.
func (m *Mirror) Root() *Node {
	return m.root
}

// Find looks up a node by its FullPath.
func (m *Mirror) Find(fullPath string) (*Node, bool) {
	n, ok := m.index[filepath.Clean(fullPath)]
	return n, ok
}

// Len returns the number of nodes in the mirror, root included.
func (m *Mirror) Len() int {
	return len(m.index)
}

func (m *Mirror) setRoot(n *Node) {
	m.root = n
	m.index = map[string]*Node{n.FullPath: n}
}

// attach appends child to parent. FullPath must be unique across the mirror.
func (m *Mirror) attach(parent, child *Node) error {
	if _, exists := m.index[child.FullPath]; exists {
		return fmt.Errorf("attach %s: path already mirrored", child.FullPath)
	}
	child.parent = parent.FullPath
	parent.Children = append(parent.Children, child)
	m.index[child.FullPath] = child
	return nil
}

// detach unlinks n from its parent and drops it from the index. Children are
// not touched; callers detach them first.
func (m *Mirror) detach(n *Node) {
	delete(m.index, n.FullPath)
	if n == m.root {
		m.root = nil
		return
	}
	parent, ok := m.index[n.parent]
	if !ok {
		return
	}
	if i := parent.indexOf(n.FullPath); i >= 0 {
		parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
	}
	n.parent = ""
}

// Walk visits nodes depth-first in child order. Returning false from fn skips
// the node's children.
func (m *Mirror) Walk(fn func(n *Node) bool) {
	if m.root == nil {
		return
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(m.root)
}

// Files returns every file node in tree order. This is the flat list the
// finder searches over.
func (m *Mirror) Files() []*Node {
	var files []*Node
	m.Walk(func(n *Node) bool {
		if !n.IsDir {
			files = append(files, n)
		}
		return true
	})
	return files
}

// Dirs returns the FullPath of every directory node in tree order.
func (m *Mirror) Dirs() []string {
	var dirs []string
	m.Walk(func(n *Node) bool {
		if n.IsDir {
			dirs = append(dirs, n.FullPath)
		}
		return true
	})
	return dirs
}
