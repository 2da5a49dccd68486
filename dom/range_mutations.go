package dom

// rangeUpdater keeps every live range registered with the document
// consistent across tree mutations, implementing the boundary adjustment
// steps of the platform's "insert", "remove" and "replace data"
// algorithms. It runs synchronously at the mutation site.
type rangeUpdater struct {
	doc *Document
}

var _ MutationCallback = (*rangeUpdater)(nil)
var _ replaceDataHandler = (*rangeUpdater)(nil)

func (u *rangeUpdater) OnChildListMutation(target *Node, added, removed []*Node, prevSibling, nextSibling *Node) {
	if len(u.doc.documentData.ranges) == 0 {
		return
	}

	// Removals first: a replace is a remove followed by an insert.
	for _, node := range removed {
		index := 0
		if prevSibling != nil {
			index = indexOfChild(target, prevSibling) + 1
		}
		for r := range u.doc.documentData.ranges {
			u.adjustForRemoval(r, node, target, index)
		}
	}

	if len(added) > 0 {
		index := indexOfChild(target, added[0])
		if index >= 0 {
			count := len(added)
			for r := range u.doc.documentData.ranges {
				if r.startContainer == target && r.startOffset > index {
					r.startOffset += count
				}
				if r.endContainer == target && r.endOffset > index {
					r.endOffset += count
				}
			}
		}
	}
}

// adjustForRemoval moves boundary points out of a removed subtree to the
// hole it left, and shifts later sibling offsets down.
func (u *rangeUpdater) adjustForRemoval(r *Range, node, parent *Node, index int) {
	if r.startContainer.isInclusiveAncestor(node) {
		r.startContainer = parent
		r.startOffset = index
	} else if r.startContainer == parent && r.startOffset > index {
		r.startOffset--
	}
	if r.endContainer.isInclusiveAncestor(node) {
		r.endContainer = parent
		r.endOffset = index
	} else if r.endContainer == parent && r.endOffset > index {
		r.endOffset--
	}
}

func (u *rangeUpdater) OnAttributeMutation(target *Node, name, namespace, oldValue string, hadOldValue bool) {
	// Attributes sit outside the child tree; no boundary can point there.
}

func (u *rangeUpdater) OnCharacterDataMutation(target *Node, oldValue string) {
	// Handled by OnReplaceData, which carries the splice coordinates.
}

func (u *rangeUpdater) OnReplaceData(target *Node, offset, count, dataLength int) {
	for r := range u.doc.documentData.ranges {
		if r.startContainer == target {
			r.startOffset = adjustOffsetForReplace(r.startOffset, offset, count, dataLength)
		}
		if r.endContainer == target {
			r.endOffset = adjustOffsetForReplace(r.endOffset, offset, count, dataLength)
		}
	}
}

// adjustOffsetForReplace maps a boundary offset across a data splice:
// offsets inside the replaced region clamp to its start, offsets past it
// shift by the length difference.
func adjustOffsetForReplace(boundary, offset, count, dataLength int) int {
	if boundary > offset && boundary <= offset+count {
		return offset
	}
	if boundary > offset+count {
		return boundary + dataLength - count
	}
	return boundary
}
