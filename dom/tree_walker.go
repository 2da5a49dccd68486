package dom

// TreeWalker navigates the filtered view of a subtree along structural
// axes: parent, first/last child, next/previous sibling, and document-order
// next/previous. Unlike NodeIterator it has a current node that callers may
// set to anything, including nodes outside the root; the walker does not
// track tree mutations.
//
// FilterReject prunes a node together with its whole subtree, while
// FilterSkip hides only the node itself and splices its children into the
// filtered view in its place.
type TreeWalker struct {
	traverser
	current *Node
}

// CreateTreeWalker returns a new walker rooted at root, with root as the
// initial current node.
func (d *Document) CreateTreeWalker(root *Node, whatToShow uint32, filter NodeFilter) *TreeWalker {
	return &TreeWalker{
		traverser: traverser{
			root:       root,
			whatToShow: whatToShow,
			filter:     filter,
		},
		current: root,
	}
}

// Root returns the walker's root node.
func (w *TreeWalker) Root() *Node {
	return w.root
}

// WhatToShow returns the walker's node-type mask.
func (w *TreeWalker) WhatToShow() uint32 {
	return w.whatToShow
}

// Filter returns the walker's predicate, or nil.
func (w *TreeWalker) Filter() NodeFilter {
	return w.filter
}

// CurrentNode returns the walker's current node.
func (w *TreeWalker) CurrentNode() *Node {
	return w.current
}

// SetCurrentNode repositions the walker. Any node is allowed; the filter
// is not consulted.
func (w *TreeWalker) SetCurrentNode(node *Node) error {
	if node == nil {
		return ErrNotSupported("The current node cannot be null.")
	}
	w.current = node
	return nil
}

// ParentNode moves to the nearest accepted ancestor within the root's
// subtree, or returns nil leaving the walker in place.
func (w *TreeWalker) ParentNode() (*Node, error) {
	node := w.current
	for node != nil && node != w.root {
		node = node.parentNode
		if node == nil {
			break
		}
		result, err := w.filterNode(node)
		if err != nil {
			return nil, err
		}
		if result == FilterAccept {
			w.current = node
			return node, nil
		}
	}
	return nil, nil
}

// FirstChild moves to the first accepted child in the filtered view, or
// returns nil leaving the walker in place.
func (w *TreeWalker) FirstChild() (*Node, error) {
	return w.traverseChildren(true)
}

// LastChild moves to the last accepted child in the filtered view, or
// returns nil leaving the walker in place.
func (w *TreeWalker) LastChild() (*Node, error) {
	return w.traverseChildren(false)
}

func (w *TreeWalker) traverseChildren(first bool) (*Node, error) {
	node := childEnd(w.current, first)
	for node != nil {
		result, err := w.filterNode(node)
		if err != nil {
			return nil, err
		}
		switch result {
		case FilterAccept:
			w.current = node
			return node, nil
		case FilterSkip:
			// Skipped nodes contribute their children in place.
			if child := childEnd(node, first); child != nil {
				node = child
				continue
			}
		}
		// Rejected subtree, or skipped leaf: move sideways, climbing
		// back out of skipped ancestors but never past the start.
		for node != nil {
			if sibling := siblingToward(node, first); sibling != nil {
				node = sibling
				break
			}
			parent := node.parentNode
			if parent == nil || parent == w.root || parent == w.current {
				return nil, nil
			}
			node = parent
		}
	}
	return nil, nil
}

// NextSibling moves to the next accepted sibling in the filtered view, or
// returns nil leaving the walker in place.
func (w *TreeWalker) NextSibling() (*Node, error) {
	return w.traverseSiblings(true)
}

// PreviousSibling moves to the previous accepted sibling in the filtered
// view, or returns nil leaving the walker in place.
func (w *TreeWalker) PreviousSibling() (*Node, error) {
	return w.traverseSiblings(false)
}

func (w *TreeWalker) traverseSiblings(forward bool) (*Node, error) {
	node := w.current
	if node == w.root {
		return nil, nil
	}
	for {
		sibling := siblingToward(node, forward)
		for sibling != nil {
			node = sibling
			result, err := w.filterNode(node)
			if err != nil {
				return nil, err
			}
			if result == FilterAccept {
				w.current = node
				return node, nil
			}
			// A skipped sibling exposes its children as siblings.
			sibling = childEnd(node, forward)
			if result == FilterReject || sibling == nil {
				sibling = siblingToward(node, forward)
			}
		}
		node = node.parentNode
		if node == nil || node == w.root {
			return nil, nil
		}
		result, err := w.filterNode(node)
		if err != nil {
			return nil, err
		}
		if result == FilterAccept {
			return nil, nil
		}
	}
}

// NextNode moves to the next accepted node in filtered document order, or
// returns nil leaving the walker in place.
func (w *TreeWalker) NextNode() (*Node, error) {
	node := w.current
	result := FilterAccept
	for {
		for result != FilterReject && node.firstChild != nil {
			node = node.firstChild
			r, err := w.filterNode(node)
			if err != nil {
				return nil, err
			}
			result = r
			if result == FilterAccept {
				w.current = node
				return node, nil
			}
		}

		next := followingSkippingChildren(node, w.root)
		if next == nil {
			return nil, nil
		}
		node = next

		r, err := w.filterNode(node)
		if err != nil {
			return nil, err
		}
		result = r
		if result == FilterAccept {
			w.current = node
			return node, nil
		}
	}
}

// PreviousNode moves to the previous accepted node in filtered document
// order, or returns nil leaving the walker in place.
func (w *TreeWalker) PreviousNode() (*Node, error) {
	node := w.current
	for node != w.root {
		sibling := node.prevSibling
		for sibling != nil {
			node = sibling
			result, err := w.filterNode(node)
			if err != nil {
				return nil, err
			}
			// Descend to the last visible descendant unless the
			// subtree is pruned outright.
			for result != FilterReject && node.lastChild != nil {
				node = node.lastChild
				result, err = w.filterNode(node)
				if err != nil {
					return nil, err
				}
			}
			if result == FilterAccept {
				w.current = node
				return node, nil
			}
			sibling = node.prevSibling
		}
		if node == w.root || node.parentNode == nil {
			return nil, nil
		}
		node = node.parentNode
		result, err := w.filterNode(node)
		if err != nil {
			return nil, err
		}
		if result == FilterAccept {
			w.current = node
			return node, nil
		}
	}
	return nil, nil
}

func childEnd(node *Node, first bool) *Node {
	if first {
		return node.firstChild
	}
	return node.lastChild
}

func siblingToward(node *Node, forward bool) *Node {
	if forward {
		return node.nextSibling
	}
	return node.prevSibling
}
