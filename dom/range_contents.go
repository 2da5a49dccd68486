package dom

// DeleteContents removes the range's contents from the tree and collapses
// the range.
func (r *Range) DeleteContents() error {
	if r.Collapsed() {
		return nil
	}

	if r.startContainer == r.endContainer && r.startContainer.nodeType.IsCharacterData() {
		cd := (*CharacterData)(r.startContainer)
		return cd.DeleteData(r.startOffset, r.endOffset-r.startOffset)
	}

	// Capture the post-delete collapse point before mutating.
	newNode, newOffset := r.deletionCollapsePoint()

	var nodesToRemove []*Node
	common := r.CommonAncestorContainer()
	for node := following(common, common); node != nil; {
		if r.contains(node) {
			nodesToRemove = append(nodesToRemove, node)
			node = followingSkippingChildren(node, common)
		} else {
			node = following(node, common)
		}
	}

	startPartial := r.startContainer.nodeType.IsCharacterData() && r.startContainer != r.endContainer
	endPartial := r.endContainer.nodeType.IsCharacterData() && r.startContainer != r.endContainer

	if startPartial {
		cd := (*CharacterData)(r.startContainer)
		if err := cd.DeleteData(r.startOffset, cd.Length()-r.startOffset); err != nil {
			return err
		}
	}
	for _, node := range nodesToRemove {
		if node.parentNode != nil {
			node.parentNode.RemoveChild(node)
		}
	}
	if endPartial {
		cd := (*CharacterData)(r.endContainer)
		if err := cd.DeleteData(0, r.endOffset); err != nil {
			return err
		}
	}

	r.startContainer = newNode
	r.startOffset = newOffset
	r.endContainer = newNode
	r.endOffset = newOffset
	return nil
}

// deletionCollapsePoint computes where the range collapses to after its
// contents are removed.
func (r *Range) deletionCollapsePoint() (*Node, int) {
	if r.endContainer.isInclusiveAncestor(r.startContainer) {
		return r.startContainer, r.startOffset
	}
	reference := r.startContainer
	for reference.parentNode != nil && !r.endContainer.isInclusiveAncestor(reference.parentNode) {
		reference = reference.parentNode
	}
	parent := reference.parentNode
	if parent == nil {
		return r.startContainer, r.startOffset
	}
	return parent, indexOfChild(parent, reference) + 1
}

// ExtractContents moves the range's contents into a new fragment and
// collapses the range. Partially contained character data is split between
// the tree and the fragment; partially contained elements are shallow
// cloned on the fragment side so both halves keep a branch to the root.
func (r *Range) ExtractContents() (*Node, error) {
	return r.collectContents(true)
}

// CloneContents copies the range's contents into a new fragment, leaving
// the tree and the range untouched.
func (r *Range) CloneContents() (*Node, error) {
	return r.collectContents(false)
}

func (r *Range) collectContents(extract bool) (*Node, error) {
	frag := r.doc.CreateDocumentFragment()
	if r.Collapsed() {
		return frag, nil
	}

	if r.startContainer == r.endContainer && r.startContainer.nodeType.IsCharacterData() {
		clone := r.startContainer.CloneNode(false)
		data := utf16Substring(r.startContainer.NodeValue(), r.startOffset, r.endOffset-r.startOffset)
		clone.data = &data
		frag.AppendChild(clone)
		if extract {
			cd := (*CharacterData)(r.startContainer)
			if err := cd.DeleteData(r.startOffset, r.endOffset-r.startOffset); err != nil {
				return nil, err
			}
			r.Collapse(true)
		}
		return frag, nil
	}

	common := r.CommonAncestorContainer()

	var firstPartial, lastPartial *Node
	if !r.endContainer.isInclusiveAncestor(r.startContainer) {
		for child := common.firstChild; child != nil; child = child.nextSibling {
			if r.partiallyContains(child) {
				firstPartial = child
				break
			}
		}
	}
	if !r.startContainer.isInclusiveAncestor(r.endContainer) {
		for child := common.lastChild; child != nil; child = child.prevSibling {
			if r.partiallyContains(child) {
				lastPartial = child
				break
			}
		}
	}

	var contained []*Node
	for child := common.firstChild; child != nil; child = child.nextSibling {
		if r.contains(child) {
			if child.nodeType == DocumentTypeNode {
				return nil, ErrHierarchyRequest("The range contains a doctype.")
			}
			contained = append(contained, child)
		}
	}

	newNode, newOffset := r.deletionCollapsePoint()

	if firstPartial != nil {
		if firstPartial.nodeType.IsCharacterData() {
			// firstPartial is the start container itself here.
			clone := r.startContainer.CloneNode(false)
			length := nodeLength(r.startContainer)
			data := utf16Substring(r.startContainer.NodeValue(), r.startOffset, length-r.startOffset)
			clone.data = &data
			frag.AppendChild(clone)
			if extract {
				cd := (*CharacterData)(r.startContainer)
				if err := cd.DeleteData(r.startOffset, length-r.startOffset); err != nil {
					return nil, err
				}
			}
		} else {
			clone := firstPartial.CloneNode(false)
			frag.AppendChild(clone)
			sub := r.doc.CreateRange()
			sub.startContainer = r.startContainer
			sub.startOffset = r.startOffset
			sub.endContainer = firstPartial
			sub.endOffset = nodeLength(firstPartial)
			subFrag, err := sub.collectContents(extract)
			sub.Detach()
			if err != nil {
				return nil, err
			}
			clone.AppendChild(subFrag)
		}
	}

	for _, child := range contained {
		if extract {
			frag.AppendChild(child)
		} else {
			frag.AppendChild(child.CloneNode(true))
		}
	}

	if lastPartial != nil {
		if lastPartial.nodeType.IsCharacterData() {
			clone := r.endContainer.CloneNode(false)
			data := utf16SliceTo(r.endContainer.NodeValue(), r.endOffset)
			clone.data = &data
			frag.AppendChild(clone)
			if extract {
				cd := (*CharacterData)(r.endContainer)
				if err := cd.DeleteData(0, r.endOffset); err != nil {
					return nil, err
				}
			}
		} else {
			clone := lastPartial.CloneNode(false)
			frag.AppendChild(clone)
			sub := r.doc.CreateRange()
			sub.startContainer = lastPartial
			sub.startOffset = 0
			sub.endContainer = r.endContainer
			sub.endOffset = r.endOffset
			subFrag, err := sub.collectContents(extract)
			sub.Detach()
			if err != nil {
				return nil, err
			}
			clone.AppendChild(subFrag)
		}
	}

	if extract {
		r.startContainer = newNode
		r.startOffset = newOffset
		r.endContainer = newNode
		r.endOffset = newOffset
	}
	return frag, nil
}

// InsertNode inserts node at the range's start. A start inside a text node
// splits it first. The range's end is pushed past the inserted content
// when the range was collapsed at the insertion point.
func (r *Range) InsertNode(node *Node) error {
	start := r.startContainer
	switch start.nodeType {
	case ProcessingInstructionNode, CommentNode:
		return ErrHierarchyRequest("Cannot insert into a comment or processing instruction.")
	case TextNode:
		if start.parentNode == nil {
			return ErrHierarchyRequest("Cannot insert into a text node without a parent.")
		}
	case CDATASectionNode:
		if start.parentNode == nil {
			return ErrHierarchyRequest("Cannot insert into a text node without a parent.")
		}
	}

	var reference *Node
	if start.nodeType == TextNode || start.nodeType == CDATASectionNode {
		reference = start
	} else {
		reference = childAtIndex(start, r.startOffset)
	}

	parent := start
	if reference != nil {
		parent = reference.parentNode
	}

	if err := parent.validatePreInsertion(node, reference); err != nil {
		return err
	}

	if start.nodeType == TextNode || start.nodeType == CDATASectionNode {
		split, err := (*Text)(start).SplitText(r.startOffset)
		if err != nil {
			return err
		}
		reference = (*Node)(split)
	}
	if node == reference {
		reference = node.nextSibling
	}
	if node.parentNode != nil {
		node.parentNode.RemoveChild(node)
	}

	newOffset := nodeLength(parent)
	if reference != nil {
		newOffset = indexOfChild(parent, reference)
	}
	if node.nodeType == DocumentFragmentNode {
		newOffset += nodeLength(node)
	} else {
		newOffset++
	}

	wasCollapsed := r.Collapsed()
	if _, err := parent.InsertBeforeWithError(node, reference); err != nil {
		return err
	}
	if wasCollapsed {
		r.endContainer = parent
		r.endOffset = newOffset
	}
	return nil
}

// SurroundContents extracts the range's contents, wraps them in newParent
// and reinserts the result, then selects newParent. Fails with
// InvalidStateError when the range splits a non-text node.
func (r *Range) SurroundContents(newParent *Node) error {
	common := r.CommonAncestorContainer()
	for node := following(common, common); node != nil; node = following(node, common) {
		if node.nodeType != TextNode && r.partiallyContains(node) {
			return ErrInvalidState("The range splits a non-text node.")
		}
	}

	switch newParent.nodeType {
	case DocumentNode, DocumentTypeNode, DocumentFragmentNode:
		return ErrInvalidNodeType("The new parent cannot hold the extracted contents.")
	}

	frag, err := r.ExtractContents()
	if err != nil {
		return err
	}
	for newParent.firstChild != nil {
		newParent.RemoveChild(newParent.firstChild)
	}
	if err := r.InsertNode(newParent); err != nil {
		return err
	}
	newParent.AppendChild(frag)
	return r.SelectNode(newParent)
}
