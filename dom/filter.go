package dom

// FilterResult is the verdict a NodeFilter returns for a candidate node.
type FilterResult uint16

const (
	// FilterAccept includes the node in the traversal.
	FilterAccept FilterResult = 1
	// FilterReject excludes the node; TreeWalker also prunes its subtree.
	FilterReject FilterResult = 2
	// FilterSkip excludes the node but still considers its descendants.
	FilterSkip FilterResult = 3
)

// whatToShow bitmask values. Each bit admits one node type: bit nodeType-1.
const (
	ShowAll                   uint32 = 0xFFFFFFFF
	ShowElement               uint32 = 0x1
	ShowAttribute             uint32 = 0x2
	ShowText                  uint32 = 0x4
	ShowCDATASection          uint32 = 0x8
	ShowProcessingInstruction uint32 = 0x40
	ShowComment               uint32 = 0x80
	ShowDocument              uint32 = 0x100
	ShowDocumentType          uint32 = 0x200
	ShowDocumentFragment      uint32 = 0x400
)

// NodeFilter decides whether a traversal includes a node. AcceptNode may
// return an error, which aborts the traversal step and propagates to the
// caller.
type NodeFilter interface {
	AcceptNode(node *Node) (FilterResult, error)
}

// NodeFilterFunc adapts a plain function to the NodeFilter interface.
type NodeFilterFunc func(node *Node) (FilterResult, error)

// AcceptNode calls f.
func (f NodeFilterFunc) AcceptNode(node *Node) (FilterResult, error) {
	return f(node)
}

// traverser is the state shared by NodeIterator and TreeWalker: the fixed
// root, the whatToShow mask, the optional predicate, and the recursion
// guard that rejects re-entrant filter calls.
type traverser struct {
	root       *Node
	whatToShow uint32
	filter     NodeFilter
	active     bool
}

// filterNode runs the two-stage test: the whatToShow mask first, then the
// predicate. A node failing the mask is skipped without consulting the
// predicate. Calling back into the owning traversal from inside the
// predicate is an InvalidStateError.
func (t *traverser) filterNode(node *Node) (FilterResult, error) {
	if t.active {
		return 0, ErrInvalidState("The filter is already being invoked.")
	}

	bit := uint32(1) << (uint32(node.nodeType) - 1)
	if t.whatToShow&bit == 0 {
		return FilterSkip, nil
	}
	if t.filter == nil {
		return FilterAccept, nil
	}

	t.active = true
	result, err := t.filter.AcceptNode(node)
	t.active = false
	if err != nil {
		return 0, err
	}
	return result, nil
}
