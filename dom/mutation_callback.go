package dom

// MutationCallback receives tree mutations synchronously, at the mutation
// site, before control returns to the caller. The document's live-range
// updater is a callback; MutationObserver delivery is asynchronous and
// goes through the record queue instead.
type MutationCallback interface {
	OnChildListMutation(target *Node, added, removed []*Node, prevSibling, nextSibling *Node)
	OnAttributeMutation(target *Node, name, namespace, oldValue string, hadOldValue bool)
	OnCharacterDataMutation(target *Node, oldValue string)
}

// replaceDataHandler is implemented by callbacks that also need the exact
// splice coordinates of character data edits, not just the old value.
type replaceDataHandler interface {
	OnReplaceData(target *Node, offset, count, dataLength int)
}

func notifyChildListMutation(target *Node, added, removed []*Node, prevSibling, nextSibling *Node) {
	doc := target.document()
	if doc == nil || doc.documentData == nil {
		return
	}
	for _, cb := range doc.documentData.callbacks {
		cb.OnChildListMutation(target, added, removed, prevSibling, nextSibling)
	}
	queueMutationRecord(doc, mutationRecord{
		recordType:      "childList",
		target:          target,
		added:           added,
		removed:         removed,
		previousSibling: prevSibling,
		nextSibling:     nextSibling,
	})
}

func notifyAttributeMutation(target *Node, name, namespace, oldValue string, hadOldValue bool) {
	doc := target.document()
	if doc == nil || doc.documentData == nil {
		return
	}
	for _, cb := range doc.documentData.callbacks {
		cb.OnAttributeMutation(target, name, namespace, oldValue, hadOldValue)
	}
	queueMutationRecord(doc, mutationRecord{
		recordType:    "attributes",
		target:        target,
		attributeName: name,
		attributeNS:   namespace,
		oldValue:      oldValue,
		hasOldValue:   hadOldValue,
	})
}

func notifyCharacterDataMutation(target *Node, oldValue string) {
	doc := target.document()
	if doc == nil || doc.documentData == nil {
		return
	}
	for _, cb := range doc.documentData.callbacks {
		cb.OnCharacterDataMutation(target, oldValue)
	}
	queueMutationRecord(doc, mutationRecord{
		recordType:  "characterData",
		target:      target,
		oldValue:    oldValue,
		hasOldValue: true,
	})
}

// notifyReplaceData fires before notifyCharacterDataMutation for the same
// edit, carrying the splice coordinates in UTF-16 code units.
func notifyReplaceData(target *Node, offset, count, dataLength int) {
	doc := target.document()
	if doc == nil || doc.documentData == nil {
		return
	}
	for _, cb := range doc.documentData.callbacks {
		if h, ok := cb.(replaceDataHandler); ok {
			h.OnReplaceData(target, offset, count, dataLength)
		}
	}
}
