package dom

import "strings"

// CharacterData is the shared view over text, comment, cdata-section and
// processing-instruction nodes. All offsets and lengths are in UTF-16 code
// units, so a character outside the basic multilingual plane counts as two.
type CharacterData Node

// AsNode returns the underlying Node.
func (cd *CharacterData) AsNode() *Node {
	return (*Node)(cd)
}

// Data returns the node's character data.
func (cd *CharacterData) Data() string {
	if cd.data != nil {
		return *cd.data
	}
	return ""
}

// SetData replaces the node's data entirely.
func (cd *CharacterData) SetData(value string) error {
	return cd.replaceData(0, cd.Length(), value)
}

// Length returns the data length in UTF-16 code units.
func (cd *CharacterData) Length() int {
	return utf16Length(cd.Data())
}

// SubstringData returns count code units of data starting at offset. The
// count is clamped to the end of the data; an offset past the end is an
// IndexSizeError.
func (cd *CharacterData) SubstringData(offset, count int) (string, error) {
	length := cd.Length()
	if offset < 0 || offset > length {
		return "", ErrIndexSize("The offset is outside the data.")
	}
	if count < 0 || offset+count > length {
		count = length - offset
	}
	return utf16Substring(cd.Data(), offset, count), nil
}

// AppendData appends to the end of the data.
func (cd *CharacterData) AppendData(value string) error {
	return cd.replaceData(cd.Length(), 0, value)
}

// InsertData inserts value at offset.
func (cd *CharacterData) InsertData(offset int, value string) error {
	return cd.replaceData(offset, 0, value)
}

// DeleteData removes count code units starting at offset.
func (cd *CharacterData) DeleteData(offset, count int) error {
	return cd.replaceData(offset, count, "")
}

// ReplaceData replaces count code units starting at offset with value.
func (cd *CharacterData) ReplaceData(offset, count int, value string) error {
	return cd.replaceData(offset, count, value)
}

// replaceData implements https://dom.spec.whatwg.org/#concept-cd-replace:
// validate the offset, clamp the count, splice the data, then adjust live
// range boundaries inside the replaced region and notify observers with the
// old value.
func (cd *CharacterData) replaceData(offset, count int, value string) error {
	length := cd.Length()
	if offset < 0 || offset > length {
		return ErrIndexSize("The offset is outside the data.")
	}
	if count < 0 || offset+count > length {
		count = length - offset
	}

	oldValue := cd.Data()
	newValue := utf16SliceTo(oldValue, offset) + value + utf16SliceFrom(oldValue, offset+count)
	cd.data = &newValue

	node := (*Node)(cd)
	notifyReplaceData(node, offset, count, utf16Length(value))
	notifyCharacterDataMutation(node, oldValue)
	return nil
}

// Text is the text-node view over a Node.
type Text Node

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node {
	return (*Node)(t)
}

// AsCharacterData returns the CharacterData view.
func (t *Text) AsCharacterData() *CharacterData {
	return (*CharacterData)(t)
}

// Data returns the node's text.
func (t *Text) Data() string {
	return (*CharacterData)(t).Data()
}

// SplitText splits this text node at offset, moving the trailing data into
// a new sibling text node inserted directly after this one. Live range
// boundaries inside the moved region follow it into the new node.
func (t *Text) SplitText(offset int) (*Text, error) {
	cd := (*CharacterData)(t)
	length := cd.Length()
	if offset < 0 || offset > length {
		return nil, ErrIndexSize("The offset is outside the data.")
	}

	node := (*Node)(t)
	trailing := utf16SliceFrom(cd.Data(), offset)
	newNode := t.ownerDoc.CreateTextNode(trailing)

	parent := node.parentNode
	if parent != nil {
		parent.InsertBefore(newNode, node.nextSibling)

		if doc := node.document(); doc != nil && doc.documentData != nil {
			index := indexOfChild(parent, node)
			for r := range doc.documentData.ranges {
				if r.startContainer == node && r.startOffset > offset {
					r.startContainer = newNode
					r.startOffset -= offset
				}
				if r.endContainer == node && r.endOffset > offset {
					r.endContainer = newNode
					r.endOffset -= offset
				}
				if r.startContainer == parent && r.startOffset == index+1 {
					r.startOffset++
				}
				if r.endContainer == parent && r.endOffset == index+1 {
					r.endOffset++
				}
			}
		}
	}

	if err := cd.DeleteData(offset, length-offset); err != nil {
		return nil, err
	}
	return (*Text)(newNode), nil
}

// WholeText returns the concatenated data of this node and its contiguous
// text-node siblings, in tree order.
func (t *Text) WholeText() string {
	node := (*Node)(t)
	start := node
	for start.prevSibling != nil && start.prevSibling.nodeType == TextNode {
		start = start.prevSibling
	}
	var sb strings.Builder
	for cur := start; cur != nil && cur.nodeType == TextNode; cur = cur.nextSibling {
		sb.WriteString(cur.NodeValue())
	}
	return sb.String()
}
