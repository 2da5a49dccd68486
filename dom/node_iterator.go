package dom

// NodeIterator walks the flat document-order sequence of nodes under a
// fixed root. Its position is a cursor sitting before or after a reference
// node, never "on" one, which is what lets it survive mutations: when the
// reference is removed from the tree the iterator repositions next to the
// hole instead of dangling.
//
// For iterators FilterReject and FilterSkip behave identically: the
// sequence is flat, so there is no subtree to prune.
type NodeIterator struct {
	traverser
	reference     *Node
	pointerBefore bool
	doc           *Document
}

// CreateNodeIterator returns a new iterator rooted at root, positioned
// before root itself. A nil filter accepts every node the whatToShow mask
// admits.
func (d *Document) CreateNodeIterator(root *Node, whatToShow uint32, filter NodeFilter) *NodeIterator {
	it := &NodeIterator{
		traverser: traverser{
			root:       root,
			whatToShow: whatToShow,
			filter:     filter,
		},
		reference:     root,
		pointerBefore: true,
		doc:           d,
	}
	d.documentData.iterators[it] = struct{}{}
	return it
}

// Root returns the iterator's root node.
func (it *NodeIterator) Root() *Node {
	return it.root
}

// ReferenceNode returns the node the cursor is anchored to.
func (it *NodeIterator) ReferenceNode() *Node {
	return it.reference
}

// PointerBeforeReferenceNode reports whether the cursor sits before the
// reference node rather than after it.
func (it *NodeIterator) PointerBeforeReferenceNode() bool {
	return it.pointerBefore
}

// WhatToShow returns the iterator's node-type mask.
func (it *NodeIterator) WhatToShow() uint32 {
	return it.whatToShow
}

// Filter returns the iterator's predicate, or nil.
func (it *NodeIterator) Filter() NodeFilter {
	return it.filter
}

// NextNode advances past the next accepted node and returns it, or nil at
// the end of the sequence.
func (it *NodeIterator) NextNode() (*Node, error) {
	return it.traverse(true)
}

// PreviousNode retreats past the previous accepted node and returns it, or
// nil at the start of the sequence.
func (it *NodeIterator) PreviousNode() (*Node, error) {
	return it.traverse(false)
}

func (it *NodeIterator) traverse(forward bool) (*Node, error) {
	node := it.reference
	beforeNode := it.pointerBefore

	for {
		if forward {
			if beforeNode {
				beforeNode = false
			} else {
				node = following(node, it.root)
				if node == nil {
					return nil, nil
				}
			}
		} else {
			if !beforeNode {
				beforeNode = true
			} else {
				node = preceding(node, it.root)
				if node == nil {
					return nil, nil
				}
			}
		}

		result, err := it.filterNode(node)
		if err != nil {
			return nil, err
		}
		if result == FilterAccept {
			break
		}
	}

	it.reference = node
	it.pointerBefore = beforeNode
	return node, nil
}

// Detach releases the iterator: it stops tracking tree mutations. Using a
// detached iterator is still safe, it just no longer repositions when its
// reference node is removed.
func (it *NodeIterator) Detach() {
	if it.doc != nil && it.doc.documentData != nil {
		delete(it.doc.documentData.iterators, it)
	}
}

// preRemove implements the iterator pre-removing steps: called while
// toRemove is still linked, just before it leaves the tree.
func (it *NodeIterator) preRemove(toRemove *Node) {
	if !it.reference.isInclusiveAncestor(toRemove) || toRemove == it.root {
		return
	}

	if it.pointerBefore {
		if next := followingSkippingChildren(toRemove, it.root); next != nil {
			it.reference = next
			return
		}
		it.pointerBefore = false
	}

	if prev := toRemove.prevSibling; prev != nil {
		deepest := prev
		for deepest.lastChild != nil {
			deepest = deepest.lastChild
		}
		it.reference = deepest
	} else {
		it.reference = toRemove.parentNode
	}
}
