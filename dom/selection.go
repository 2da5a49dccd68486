package dom

// SelectionDirection records which way a selection was made: the anchor is
// where it started, the focus is where it ended. A backward selection has
// its anchor at the range's end.
type SelectionDirection string

const (
	DirectionNone     SelectionDirection = "none"
	DirectionForward  SelectionDirection = "forward"
	DirectionBackward SelectionDirection = "backward"
)

// Selection is the document's single selection: at most one live range
// plus a direction. The anchor/focus view decouples the user's gesture
// from the range's normalized start-before-end form.
type Selection struct {
	doc       *Document
	rng       *Range
	direction SelectionDirection
}

// GetSelection returns the document's selection, creating it on first use.
func (d *Document) GetSelection() *Selection {
	if d.documentData.selection == nil {
		d.documentData.selection = &Selection{doc: d, direction: DirectionNone}
	}
	return d.documentData.selection
}

// Direction returns the selection's direction, or DirectionNone when the
// selection is empty.
func (s *Selection) Direction() SelectionDirection {
	if s.rng == nil {
		return DirectionNone
	}
	return s.direction
}

// AnchorNode returns the node containing the selection's anchor, or nil.
func (s *Selection) AnchorNode() *Node {
	node, _ := s.anchor()
	return node
}

// AnchorOffset returns the offset of the selection's anchor.
func (s *Selection) AnchorOffset() int {
	_, offset := s.anchor()
	return offset
}

// FocusNode returns the node containing the selection's focus, or nil.
func (s *Selection) FocusNode() *Node {
	node, _ := s.focus()
	return node
}

// FocusOffset returns the offset of the selection's focus.
func (s *Selection) FocusOffset() int {
	_, offset := s.focus()
	return offset
}

func (s *Selection) anchor() (*Node, int) {
	if s.rng == nil {
		return nil, 0
	}
	if s.direction == DirectionBackward {
		return s.rng.endContainer, s.rng.endOffset
	}
	return s.rng.startContainer, s.rng.startOffset
}

func (s *Selection) focus() (*Node, int) {
	if s.rng == nil {
		return nil, 0
	}
	if s.direction == DirectionBackward {
		return s.rng.startContainer, s.rng.startOffset
	}
	return s.rng.endContainer, s.rng.endOffset
}

// IsCollapsed reports whether the selection is empty or collapsed.
func (s *Selection) IsCollapsed() bool {
	return s.rng == nil || s.rng.Collapsed()
}

// RangeCount returns 0 or 1.
func (s *Selection) RangeCount() int {
	if s.rng == nil {
		return 0
	}
	return 1
}

// GetRangeAt returns the selection's range. Only index 0 is valid.
func (s *Selection) GetRangeAt(index int) (*Range, error) {
	if index != 0 || s.rng == nil {
		return nil, ErrIndexSize("The index is not a valid selection range index.")
	}
	return s.rng, nil
}

// AddRange associates a range with the selection. A selection holds at
// most one range; further additions are ignored.
func (s *Selection) AddRange(r *Range) {
	if s.rng != nil {
		return
	}
	s.rng = r
	s.direction = DirectionForward
}

// RemoveRange disassociates the given range. Returns NotFoundError when it
// is not the selection's range.
func (s *Selection) RemoveRange(r *Range) error {
	if s.rng != r || r == nil {
		return ErrNotFound("The range is not part of the selection.")
	}
	s.rng = nil
	s.direction = DirectionNone
	return nil
}

// RemoveAllRanges empties the selection.
func (s *Selection) RemoveAllRanges() {
	s.rng = nil
	s.direction = DirectionNone
}

// Empty is an alias for RemoveAllRanges.
func (s *Selection) Empty() {
	s.RemoveAllRanges()
}

// Collapse collapses the selection to (node, offset). A nil node empties
// the selection instead.
func (s *Selection) Collapse(node *Node, offset int) error {
	if node == nil {
		s.RemoveAllRanges()
		return nil
	}
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("A DocumentType node cannot contain a selection boundary.")
	}
	if err := validateBoundary(node, offset); err != nil {
		return err
	}
	r := s.doc.CreateRange()
	r.startContainer = node
	r.startOffset = offset
	r.endContainer = node
	r.endOffset = offset
	s.setRange(r)
	s.direction = DirectionForward
	return nil
}

// CollapseToStart collapses the selection to its range's start.
func (s *Selection) CollapseToStart() error {
	if s.rng == nil {
		return ErrInvalidState("There is no selection to collapse.")
	}
	return s.Collapse(s.rng.startContainer, s.rng.startOffset)
}

// CollapseToEnd collapses the selection to its range's end.
func (s *Selection) CollapseToEnd() error {
	if s.rng == nil {
		return ErrInvalidState("There is no selection to collapse.")
	}
	return s.Collapse(s.rng.endContainer, s.rng.endOffset)
}

// SelectAllChildren selects all of node's contents, forward.
func (s *Selection) SelectAllChildren(node *Node) error {
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("A DocumentType node cannot contain a selection boundary.")
	}
	r := s.doc.CreateRange()
	if err := r.SelectNodeContents(node); err != nil {
		r.Detach()
		return err
	}
	s.setRange(r)
	s.direction = DirectionForward
	return nil
}

// SetBaseAndExtent sets the selection from an anchor (base) to a focus
// (extent), deriving the direction from their document order.
func (s *Selection) SetBaseAndExtent(baseNode *Node, baseOffset int, extentNode *Node, extentOffset int) error {
	for _, n := range []*Node{baseNode, extentNode} {
		if n.nodeType == DocumentTypeNode {
			return ErrInvalidNodeType("A DocumentType node cannot contain a selection boundary.")
		}
	}
	if err := validateBoundary(baseNode, baseOffset); err != nil {
		return err
	}
	if err := validateBoundary(extentNode, extentOffset); err != nil {
		return err
	}

	cmp, err := comparePoints(baseNode, baseOffset, extentNode, extentOffset)
	if err != nil {
		return err
	}

	r := s.doc.CreateRange()
	if cmp <= 0 {
		r.startContainer, r.startOffset = baseNode, baseOffset
		r.endContainer, r.endOffset = extentNode, extentOffset
		s.setRange(r)
		s.direction = DirectionForward
	} else {
		r.startContainer, r.startOffset = extentNode, extentOffset
		r.endContainer, r.endOffset = baseNode, baseOffset
		s.setRange(r)
		s.direction = DirectionBackward
	}
	return nil
}

// Extend moves the selection's focus to (node, offset), keeping the anchor
// in place. The direction flips as the focus crosses the anchor.
func (s *Selection) Extend(node *Node, offset int) error {
	if s.rng == nil {
		return ErrInvalidState("There is no selection to extend.")
	}
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("A DocumentType node cannot contain a selection boundary.")
	}
	if err := validateBoundary(node, offset); err != nil {
		return err
	}

	anchorNode, anchorOffset := s.anchor()
	if anchorNode.GetRootNode() != node.GetRootNode() {
		// Focus moved to a different tree: the anchor cannot be kept.
		return s.Collapse(node, offset)
	}
	return s.SetBaseAndExtent(anchorNode, anchorOffset, node, offset)
}

// setRange replaces the selection's range, detaching the old one.
func (s *Selection) setRange(r *Range) {
	if s.rng != nil {
		s.rng.Detach()
	}
	s.rng = r
}

// ContainsNode reports whether node is within the selection. With
// allowPartial false the node must be entirely inside.
func (s *Selection) ContainsNode(node *Node, allowPartial bool) bool {
	if s.rng == nil || node == nil {
		return false
	}
	if allowPartial {
		return s.rng.IntersectsNode(node)
	}
	return s.rng.contains(node)
}

// DeleteFromDocument removes the selected contents from the tree.
func (s *Selection) DeleteFromDocument() error {
	if s.rng == nil {
		return nil
	}
	return s.rng.DeleteContents()
}

// String returns the selected text.
func (s *Selection) String() string {
	if s.rng == nil {
		return ""
	}
	return s.rng.String()
}

// Modify granularities and alterations.
const (
	AlterMove   = "move"
	AlterExtend = "extend"

	GranularityCharacter = "character"
	GranularityWord      = "word"
)

// Modify moves the selection's focus by one unit of granularity. With
// AlterMove the selection collapses to the new focus; with AlterExtend the
// anchor stays put. Word boundaries use an ASCII classifier: letters,
// digits and underscore are word characters.
func (s *Selection) Modify(alter, direction, granularity string) error {
	if s.rng == nil {
		return nil
	}
	forward := direction == "forward" || direction == "right"

	focusNode, focusOffset := s.focus()
	point := boundaryPoint{focusNode, focusOffset}

	switch granularity {
	case GranularityCharacter:
		point = moveByCharacter(point, forward)
	case GranularityWord:
		point = moveByWord(point, forward)
	default:
		return ErrNotSupported("Unknown granularity.")
	}

	if alter == AlterExtend {
		return s.Extend(point.node, point.offset)
	}
	return s.Collapse(point.node, point.offset)
}

type boundaryPoint struct {
	node   *Node
	offset int
}

// moveByCharacter steps one UTF-16 code unit through the document's text,
// hopping across intervening element structure between text nodes. At the
// edge of the text it stays put.
func moveByCharacter(p boundaryPoint, forward bool) boundaryPoint {
	if p.node.nodeType.IsCharacterData() {
		if forward && p.offset < nodeLength(p.node) {
			return boundaryPoint{p.node, p.offset + 1}
		}
		if !forward && p.offset > 0 {
			return boundaryPoint{p.node, p.offset - 1}
		}
	}

	root := p.node.GetRootNode()
	if forward {
		for node := following(root, root); node != nil; node = following(node, root) {
			if node.nodeType != TextNode || nodeLength(node) == 0 {
				continue
			}
			cmp, err := comparePoints(node, 0, p.node, p.offset)
			if err == nil && cmp >= 0 {
				return boundaryPoint{node, 1}
			}
		}
	} else {
		var best *Node
		for node := following(root, root); node != nil; node = following(node, root) {
			if node.nodeType != TextNode || nodeLength(node) == 0 {
				continue
			}
			cmp, err := comparePoints(node, nodeLength(node), p.node, p.offset)
			if err == nil && cmp <= 0 {
				best = node
			}
		}
		if best != nil {
			return boundaryPoint{best, nodeLength(best) - 1}
		}
	}
	return p
}

// moveByWord skips separator characters, then a run of word characters,
// landing at the far edge of the adjacent word.
func moveByWord(p boundaryPoint, forward bool) boundaryPoint {
	for {
		c, ok := peekCharacter(p, forward)
		if !ok || isWordChar(c) {
			break
		}
		p = moveByCharacter(p, forward)
	}
	for {
		c, ok := peekCharacter(p, forward)
		if !ok || !isWordChar(c) {
			break
		}
		p = moveByCharacter(p, forward)
	}
	return p
}

// peekCharacter returns the code unit that a character step would cross,
// without moving.
func peekCharacter(p boundaryPoint, forward bool) (byte, bool) {
	q := moveByCharacter(p, forward)
	if q == p {
		return 0, false
	}
	data := q.node.NodeValue()
	var s string
	if forward {
		s = utf16Substring(data, q.offset-1, 1)
	} else {
		s = utf16Substring(data, q.offset, 1)
	}
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

// isWordChar is the ASCII word classifier: alphanumerics and underscore.
func isWordChar(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
}
