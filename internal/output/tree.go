package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/vulnverified/wordsmith/internal/boundary"
)

// WriteTree renders a node, its attribute files and its child nodes.
func WriteTree(w io.Writer, node *boundary.Node, noColor bool) {
	if node.Empty() {
		fmt.Fprintf(w, "%s has no attributes or child nodes.\n", node.Token())
		return
	}

	t := build(node)
	t.Enumerator(tree.RoundedEnumerator)
	if !noColor {
		t.RootStyle(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))).
			EnumeratorStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
			ItemStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("250")))
	}
	fmt.Fprintln(w, t.String())
}

func build(node *boundary.Node) *tree.Tree {
	t := tree.Root(node.Token())
	if len(node.Attributes) > 0 {
		t.Child("[" + strings.Join(node.Attributes, ", ") + "]")
	}
	for _, c := range node.Children {
		if len(c.Attributes) == 0 && len(c.Children) == 0 {
			t.Child(c.Token())
			continue
		}
		t.Child(build(c))
	}
	return t
}
