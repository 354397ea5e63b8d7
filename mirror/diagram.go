package mirror

import (
	"fmt"
	"io"
)

// WriteTree writes the subtree under root as a tree diagram. The first line is
// the root's absolute path; directories carry a trailing slash.
func WriteTree(w io.Writer, root *Node) error {
	if root == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, root.FullPath); err != nil {
		return err
	}
	return writeChildren(w, root, "")
}

func writeChildren(w io.Writer, n *Node, prefix string) error {
	for i, child := range n.Children {
		last := i == len(n.Children)-1

		connector := "├── "
		if last {
			connector = "└── "
		}
		name := child.Name
		if child.IsDir {
			name += "/"
		}
		if _, err := fmt.Fprintln(w, prefix+connector+name); err != nil {
			return err
		}

		next := prefix + "│   "
		if last {
			next = prefix + "    "
		}
		if err := writeChildren(w, child, next); err != nil {
			return err
		}
	}
	return nil
}
