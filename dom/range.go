package dom

import "strings"

// AbstractRange is the read surface shared by Range and StaticRange: a
// pair of boundary points, each a (container node, offset) pair. Offsets
// into character data count UTF-16 code units; offsets into other nodes
// count children.
type AbstractRange interface {
	StartContainer() *Node
	StartOffset() int
	EndContainer() *Node
	EndOffset() int
	Collapsed() bool
}

// CompareBoundaryPoints modes.
const (
	StartToStart = 0
	StartToEnd   = 1
	EndToEnd     = 2
	EndToStart   = 3
)

// Range is a live range: its boundary points are kept valid across tree
// mutations by the owning document, and its invariant is that start never
// follows end.
type Range struct {
	startContainer *Node
	startOffset    int
	endContainer   *Node
	endOffset      int
	doc            *Document
}

var _ AbstractRange = (*Range)(nil)

// CreateRange returns a new live range collapsed at (document, 0).
func (d *Document) CreateRange() *Range {
	r := &Range{
		startContainer: (*Node)(d),
		endContainer:   (*Node)(d),
		doc:            d,
	}
	d.documentData.ranges[r] = struct{}{}
	return r
}

// StartContainer returns the node containing the range's start.
func (r *Range) StartContainer() *Node { return r.startContainer }

// StartOffset returns the offset of the range's start within its container.
func (r *Range) StartOffset() int { return r.startOffset }

// EndContainer returns the node containing the range's end.
func (r *Range) EndContainer() *Node { return r.endContainer }

// EndOffset returns the offset of the range's end within its container.
func (r *Range) EndOffset() int { return r.endOffset }

// Collapsed reports whether start and end are the same boundary point.
func (r *Range) Collapsed() bool {
	return r.startContainer == r.endContainer && r.startOffset == r.endOffset
}

// CommonAncestorContainer returns the deepest node containing both
// boundary points.
func (r *Range) CommonAncestorContainer() *Node {
	for container := r.startContainer; container != nil; container = container.parentNode {
		if container.Contains(r.endContainer) {
			return container
		}
	}
	return nil
}

// validateBoundary checks that node can hold a boundary point at offset.
func validateBoundary(node *Node, offset int) error {
	if node == nil {
		return ErrInvalidNodeType("The boundary node is null.")
	}
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("A DocumentType node cannot contain a range boundary.")
	}
	if offset < 0 || offset > nodeLength(node) {
		return ErrIndexSize("The offset is larger than the node's length.")
	}
	return nil
}

// SetStart moves the range's start. If the new start would follow the
// current end, or lies in a different tree, the range collapses to it.
func (r *Range) SetStart(node *Node, offset int) error {
	if err := validateBoundary(node, offset); err != nil {
		return err
	}
	collapse := node.GetRootNode() != r.endContainer.GetRootNode()
	if !collapse {
		cmp, err := comparePoints(node, offset, r.endContainer, r.endOffset)
		if err != nil {
			collapse = true
		} else {
			collapse = cmp > 0
		}
	}
	r.startContainer = node
	r.startOffset = offset
	if collapse {
		r.endContainer = node
		r.endOffset = offset
	}
	return nil
}

// SetEnd moves the range's end. If the new end would precede the current
// start, or lies in a different tree, the range collapses to it.
func (r *Range) SetEnd(node *Node, offset int) error {
	if err := validateBoundary(node, offset); err != nil {
		return err
	}
	collapse := node.GetRootNode() != r.startContainer.GetRootNode()
	if !collapse {
		cmp, err := comparePoints(node, offset, r.startContainer, r.startOffset)
		if err != nil {
			collapse = true
		} else {
			collapse = cmp < 0
		}
	}
	r.endContainer = node
	r.endOffset = offset
	if collapse {
		r.startContainer = node
		r.startOffset = offset
	}
	return nil
}

// SetStartBefore sets the start to just before node in its parent.
func (r *Range) SetStartBefore(node *Node) error {
	parent := node.parentNode
	if parent == nil {
		return ErrInvalidNodeType("The node has no parent.")
	}
	return r.SetStart(parent, indexOfChild(parent, node))
}

// SetStartAfter sets the start to just after node in its parent.
func (r *Range) SetStartAfter(node *Node) error {
	parent := node.parentNode
	if parent == nil {
		return ErrInvalidNodeType("The node has no parent.")
	}
	return r.SetStart(parent, indexOfChild(parent, node)+1)
}

// SetEndBefore sets the end to just before node in its parent.
func (r *Range) SetEndBefore(node *Node) error {
	parent := node.parentNode
	if parent == nil {
		return ErrInvalidNodeType("The node has no parent.")
	}
	return r.SetEnd(parent, indexOfChild(parent, node))
}

// SetEndAfter sets the end to just after node in its parent.
func (r *Range) SetEndAfter(node *Node) error {
	parent := node.parentNode
	if parent == nil {
		return ErrInvalidNodeType("The node has no parent.")
	}
	return r.SetEnd(parent, indexOfChild(parent, node)+1)
}

// Collapse collapses the range to its start (toStart true) or end.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.endContainer = r.startContainer
		r.endOffset = r.startOffset
	} else {
		r.startContainer = r.endContainer
		r.startOffset = r.endOffset
	}
}

// SelectNode sets the range to span exactly node within its parent.
func (r *Range) SelectNode(node *Node) error {
	parent := node.parentNode
	if parent == nil {
		return ErrInvalidNodeType("The node has no parent.")
	}
	index := indexOfChild(parent, node)
	r.startContainer = parent
	r.startOffset = index
	r.endContainer = parent
	r.endOffset = index + 1
	return nil
}

// SelectNodeContents sets the range to span all of node's contents.
func (r *Range) SelectNodeContents(node *Node) error {
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("A DocumentType node cannot contain a range boundary.")
	}
	r.startContainer = node
	r.startOffset = 0
	r.endContainer = node
	r.endOffset = nodeLength(node)
	return nil
}

// CompareBoundaryPoints compares a boundary of this range with a boundary
// of sourceRange per the how mode, returning -1, 0 or 1.
func (r *Range) CompareBoundaryPoints(how int, sourceRange *Range) (int, error) {
	var thisContainer, otherContainer *Node
	var thisOffset, otherOffset int

	switch how {
	case StartToStart:
		thisContainer, thisOffset = r.startContainer, r.startOffset
		otherContainer, otherOffset = sourceRange.startContainer, sourceRange.startOffset
	case StartToEnd:
		thisContainer, thisOffset = r.endContainer, r.endOffset
		otherContainer, otherOffset = sourceRange.startContainer, sourceRange.startOffset
	case EndToEnd:
		thisContainer, thisOffset = r.endContainer, r.endOffset
		otherContainer, otherOffset = sourceRange.endContainer, sourceRange.endOffset
	case EndToStart:
		thisContainer, thisOffset = r.startContainer, r.startOffset
		otherContainer, otherOffset = sourceRange.endContainer, sourceRange.endOffset
	default:
		return 0, ErrNotSupported("Unknown comparison mode.")
	}

	return comparePoints(thisContainer, thisOffset, otherContainer, otherOffset)
}

// comparePoints implements the boundary-point comparator: -1 when point A
// is before point B in the tree, 0 when equal, 1 when after. The two
// points must share a root.
func comparePoints(containerA *Node, offsetA int, containerB *Node, offsetB int) (int, error) {
	if containerA.GetRootNode() != containerB.GetRootNode() {
		return 0, ErrWrongDocument("The boundary points are in different trees.")
	}

	if containerA == containerB {
		switch {
		case offsetA < offsetB:
			return -1, nil
		case offsetA > offsetB:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if isAncestor(containerA, containerB) {
		// A contains B: compare B's branch index against A's offset.
		child := ancestorChildWithin(containerB, containerA)
		if indexOfChild(containerA, child) < offsetA {
			return 1, nil
		}
		return -1, nil
	}
	if isAncestor(containerB, containerA) {
		child := ancestorChildWithin(containerA, containerB)
		if indexOfChild(containerB, child) < offsetB {
			return -1, nil
		}
		return 1, nil
	}

	if nodePrecedes(containerA, containerB) {
		return -1, nil
	}
	return 1, nil
}

// ancestorChildWithin returns the inclusive ancestor of node whose parent
// is ancestor.
func ancestorChildWithin(node, ancestor *Node) *Node {
	cur := node
	for cur.parentNode != ancestor {
		cur = cur.parentNode
	}
	return cur
}

// nodePrecedes reports whether a comes before b in document order, for
// nodes sharing a root where neither contains the other.
func nodePrecedes(a, b *Node) bool {
	chainA := ancestorChain(a)
	chainB := ancestorChain(b)

	// Walk down from the shared root to the first divergence.
	i, j := len(chainA)-1, len(chainB)-1
	for i > 0 && j > 0 && chainA[i-1] == chainB[j-1] {
		i--
		j--
	}
	branchA, branchB := chainA[i-1], chainB[j-1]
	for c := chainA[i].firstChild; c != nil; c = c.nextSibling {
		if c == branchA {
			return true
		}
		if c == branchB {
			return false
		}
	}
	return false
}

// IsPointInRange reports whether (node, offset) falls within the range.
func (r *Range) IsPointInRange(node *Node, offset int) (bool, error) {
	if node.GetRootNode() != r.startContainer.GetRootNode() {
		return false, nil
	}
	if err := validateBoundary(node, offset); err != nil {
		return false, err
	}
	cmpStart, err := comparePoints(node, offset, r.startContainer, r.startOffset)
	if err != nil {
		return false, err
	}
	cmpEnd, err := comparePoints(node, offset, r.endContainer, r.endOffset)
	if err != nil {
		return false, err
	}
	return cmpStart >= 0 && cmpEnd <= 0, nil
}

// ComparePoint returns -1 when (node, offset) precedes the range, 0 when
// inside it, 1 when it follows.
func (r *Range) ComparePoint(node *Node, offset int) (int, error) {
	if node.GetRootNode() != r.startContainer.GetRootNode() {
		return 0, ErrWrongDocument("The point is in a different tree.")
	}
	if err := validateBoundary(node, offset); err != nil {
		return 0, err
	}
	cmp, err := comparePoints(node, offset, r.startContainer, r.startOffset)
	if err != nil {
		return 0, err
	}
	if cmp < 0 {
		return -1, nil
	}
	cmp, err = comparePoints(node, offset, r.endContainer, r.endOffset)
	if err != nil {
		return 0, err
	}
	if cmp > 0 {
		return 1, nil
	}
	return 0, nil
}

// IntersectsNode reports whether node overlaps the range at all.
func (r *Range) IntersectsNode(node *Node) bool {
	if node.GetRootNode() != r.startContainer.GetRootNode() {
		return false
	}
	parent := node.parentNode
	if parent == nil {
		return true
	}
	index := indexOfChild(parent, node)
	cmpEnd, err := comparePoints(parent, index, r.endContainer, r.endOffset)
	if err != nil {
		return false
	}
	cmpStart, err := comparePoints(parent, index+1, r.startContainer, r.startOffset)
	if err != nil {
		return false
	}
	return cmpEnd < 0 && cmpStart > 0
}

// contains reports whether node lies entirely within the range.
func (r *Range) contains(node *Node) bool {
	parent := node.parentNode
	if parent == nil {
		return false
	}
	index := indexOfChild(parent, node)
	cmpStart, err := comparePoints(parent, index, r.startContainer, r.startOffset)
	if err != nil {
		return false
	}
	cmpEnd, err := comparePoints(parent, index+1, r.endContainer, r.endOffset)
	if err != nil {
		return false
	}
	return cmpStart >= 0 && cmpEnd <= 0
}

// partiallyContains reports whether node holds exactly one of the range's
// boundary containers.
func (r *Range) partiallyContains(node *Node) bool {
	hasStart := r.startContainer.isInclusiveAncestor(node)
	hasEnd := r.endContainer.isInclusiveAncestor(node)
	return hasStart != hasEnd
}

// CloneRange returns an independent copy with the same boundary points.
func (r *Range) CloneRange() *Range {
	clone := r.doc.CreateRange()
	clone.startContainer = r.startContainer
	clone.startOffset = r.startOffset
	clone.endContainer = r.endContainer
	clone.endOffset = r.endOffset
	return clone
}

// Detach releases the range: the document stops adjusting its boundary
// points on mutation. The range remains readable.
func (r *Range) Detach() {
	if r.doc != nil && r.doc.documentData != nil {
		delete(r.doc.documentData.ranges, r)
	}
}

// String returns the text content spanned by the range. Only Text nodes
// contribute; comments and processing instructions are skipped even when a
// boundary sits inside one.
func (r *Range) String() string {
	if r.startContainer == r.endContainer && isTextual(r.startContainer) {
		return utf16Substring(r.startContainer.NodeValue(), r.startOffset, r.endOffset-r.startOffset)
	}

	var sb strings.Builder
	if r.startContainer != r.endContainer && isTextual(r.startContainer) {
		sb.WriteString(utf16SliceFrom(r.startContainer.NodeValue(), r.startOffset))
	}

	common := r.CommonAncestorContainer()
	if common != nil {
		for node := following(common, common); node != nil; node = following(node, common) {
			if isTextual(node) && r.contains(node) {
				sb.WriteString(node.NodeValue())
			}
		}
	}

	if r.endContainer != r.startContainer && isTextual(r.endContainer) {
		sb.WriteString(utf16SliceTo(r.endContainer.NodeValue(), r.endOffset))
	}
	return sb.String()
}

// isTextual reports whether n is a Text node (CDATA sections included).
func isTextual(n *Node) bool {
	return n.nodeType == TextNode || n.nodeType == CDATASectionNode
}
