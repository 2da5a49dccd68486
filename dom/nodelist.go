package dom

// NodeList is a live view over a node's children: reads always reflect the
// current tree. A nil owner makes it a static list over the items slice.
type NodeList struct {
	owner *Node
	items []*Node
}

func newNodeList(owner *Node) *NodeList {
	return &NodeList{owner: owner}
}

// newStaticNodeList wraps a snapshot slice that never changes afterwards.
func newStaticNodeList(items []*Node) *NodeList {
	return &NodeList{items: items}
}

// Length returns the number of nodes in the list.
func (nl *NodeList) Length() int {
	if nl.owner == nil {
		return len(nl.items)
	}
	count := 0
	for child := nl.owner.firstChild; child != nil; child = child.nextSibling {
		count++
	}
	return count
}

// Item returns the node at the given index, or nil if out of range.
func (nl *NodeList) Item(index int) *Node {
	if index < 0 {
		return nil
	}
	if nl.owner == nil {
		if index >= len(nl.items) {
			return nil
		}
		return nl.items[index]
	}
	return childAtIndex(nl.owner, index)
}

// All returns the nodes as a slice. For live lists this is a snapshot of
// the current children.
func (nl *NodeList) All() []*Node {
	if nl.owner == nil {
		out := make([]*Node, len(nl.items))
		copy(out, nl.items)
		return out
	}
	var out []*Node
	for child := nl.owner.firstChild; child != nil; child = child.nextSibling {
		out = append(out, child)
	}
	return out
}
