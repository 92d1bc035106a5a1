package boundary

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Node is one entry of a child-node listing.
type Node struct {
	Path       string   // slash path relative to the data root
	Attributes []string // attribute file names without extension, sorted
	Children   []*Node
}

// Token is the user-facing name of the node.
func (n *Node) Token() string {
	return Token(n.Path)
}

// Children returns the subtree rooted at node with the attributes
// available at every level.
func (v *Validator) Children(node string) (*Node, error) {
	if !v.Exists(node) {
		return nil, &UnknownError{Token: Token(node)}
	}
	return v.walk(node)
}

func (v *Validator) walk(node string) (*Node, error) {
	dir := filepath.Join(v.Root, filepath.FromSlash(node))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	n := &Node{Path: node}
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			child, err := v.walk(path.Join(node, name))
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case strings.HasSuffix(name, ".txt"):
			n.Attributes = append(n.Attributes, strings.TrimSuffix(name, ".txt"))
		}
	}

	sort.Strings(n.Attributes)
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Path < n.Children[j].Path
	})
	return n, nil
}

// Empty reports whether the node has neither attributes nor children.
func (n *Node) Empty() bool {
	return len(n.Attributes) == 0 && len(n.Children) == 0
}
