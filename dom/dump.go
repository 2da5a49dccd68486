package dom

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// DumpTree renders the subtree rooted at n as an indented tree, for
// debugging and test failure output.
func DumpTree(n *Node) string {
	tree := treeprint.NewWithRoot(describeNode(n))
	addChildren(tree, n)
	return tree.String()
}

func addChildren(branch treeprint.Tree, n *Node) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if child.firstChild != nil {
			sub := branch.AddBranch(describeNode(child))
			addChildren(sub, child)
		} else {
			branch.AddNode(describeNode(child))
		}
	}
}

func describeNode(n *Node) string {
	switch n.nodeType {
	case ElementNode:
		e := (*Element)(n)
		if id := e.ID(); id != "" {
			return fmt.Sprintf("<%s id=%q>", e.LocalName(), id)
		}
		return fmt.Sprintf("<%s>", e.LocalName())
	case TextNode:
		return fmt.Sprintf("#text %q", n.NodeValue())
	case CommentNode:
		return fmt.Sprintf("#comment %q", n.NodeValue())
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	case DocumentTypeNode:
		return fmt.Sprintf("<!DOCTYPE %s>", n.nodeName)
	default:
		return n.nodeName
	}
}
