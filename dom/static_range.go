package dom

// StaticRange is an inert pair of boundary points: a cheap snapshot that
// the document never adjusts. After a mutation its points may no longer be
// valid; Valid reports whether they still are.
type StaticRange struct {
	startContainer *Node
	startOffset    int
	endContainer   *Node
	endOffset      int
}

var _ AbstractRange = (*StaticRange)(nil)

// NewStaticRange creates a static range from explicit boundary points.
// DocumentType and Attr nodes cannot hold boundaries.
func NewStaticRange(startContainer *Node, startOffset int, endContainer *Node, endOffset int) (*StaticRange, error) {
	for _, n := range []*Node{startContainer, endContainer} {
		if n == nil {
			return nil, ErrInvalidNodeType("The boundary node is null.")
		}
		if n.nodeType == DocumentTypeNode || n.nodeType == AttributeNode {
			return nil, ErrInvalidNodeType("The boundary node cannot hold a range boundary.")
		}
	}
	return &StaticRange{
		startContainer: startContainer,
		startOffset:    startOffset,
		endContainer:   endContainer,
		endOffset:      endOffset,
	}, nil
}

// StartContainer returns the node containing the range's start.
func (sr *StaticRange) StartContainer() *Node { return sr.startContainer }

// StartOffset returns the offset of the range's start within its container.
func (sr *StaticRange) StartOffset() int { return sr.startOffset }

// EndContainer returns the node containing the range's end.
func (sr *StaticRange) EndContainer() *Node { return sr.endContainer }

// EndOffset returns the offset of the range's end within its container.
func (sr *StaticRange) EndOffset() int { return sr.endOffset }

// Collapsed reports whether start and end are the same boundary point.
func (sr *StaticRange) Collapsed() bool {
	return sr.startContainer == sr.endContainer && sr.startOffset == sr.endOffset
}

// Valid reports whether both boundary points still name positions in the
// same tree, with in-bounds offsets and start not after end.
func (sr *StaticRange) Valid() bool {
	if sr.startContainer.GetRootNode() != sr.endContainer.GetRootNode() {
		return false
	}
	if sr.startOffset > nodeLength(sr.startContainer) || sr.endOffset > nodeLength(sr.endContainer) {
		return false
	}
	cmp, err := comparePoints(sr.startContainer, sr.startOffset, sr.endContainer, sr.endOffset)
	return err == nil && cmp <= 0
}
