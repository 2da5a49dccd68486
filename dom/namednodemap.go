package dom

// NamedNodeMap holds an element's attributes in insertion order.
type NamedNodeMap struct {
	owner *Element
	attrs []*Attr
}

func newNamedNodeMap(owner *Element) *NamedNodeMap {
	return &NamedNodeMap{owner: owner}
}

// Length returns the number of attributes.
func (m *NamedNodeMap) Length() int {
	return len(m.attrs)
}

// Item returns the attribute at the given index, or nil.
func (m *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(m.attrs) {
		return nil
	}
	return m.attrs[index]
}

// GetNamedItem returns the attribute with the given qualified name, or nil.
func (m *NamedNodeMap) GetNamedItem(name string) *Attr {
	for _, attr := range m.attrs {
		if attr.name == name {
			return attr
		}
	}
	return nil
}

// GetNamedItemNS returns the attribute with the given namespace and local
// name, or nil.
func (m *NamedNodeMap) GetNamedItemNS(namespaceURI, localName string) *Attr {
	for _, attr := range m.attrs {
		if attr.namespaceURI == namespaceURI && attr.localName == localName {
			return attr
		}
	}
	return nil
}

// SetNamedItem adds an attribute, replacing any existing attribute with the
// same qualified name. Returns the replaced attribute, or nil. Returns
// InUseAttributeError if attr already belongs to another element.
func (m *NamedNodeMap) SetNamedItem(attr *Attr) (*Attr, error) {
	if attr.ownerElement != nil && attr.ownerElement != m.owner {
		return nil, ErrInUseAttribute("The attribute is in use by another element.")
	}

	var oldValue string
	hadOld := false
	var replaced *Attr
	for i, existing := range m.attrs {
		if existing.name == attr.name {
			replaced = existing
			oldValue = existing.value
			hadOld = true
			existing.ownerElement = nil
			attr.ownerElement = m.owner
			m.attrs[i] = attr
			break
		}
	}
	if replaced == nil {
		attr.ownerElement = m.owner
		m.attrs = append(m.attrs, attr)
	}

	notifyAttributeMutation((*Node)(m.owner), attr.localName, attr.namespaceURI, oldValue, hadOld)
	return replaced, nil
}

// RemoveNamedItem removes and returns the attribute with the given
// qualified name. Returns NotFoundError if no such attribute exists.
func (m *NamedNodeMap) RemoveNamedItem(name string) (*Attr, error) {
	for i, attr := range m.attrs {
		if attr.name == name {
			m.attrs = append(m.attrs[:i], m.attrs[i+1:]...)
			attr.ownerElement = nil
			notifyAttributeMutation((*Node)(m.owner), attr.localName, attr.namespaceURI, attr.value, true)
			return attr, nil
		}
	}
	return nil, ErrNotFound("No attribute with that name exists.")
}

// setAttr installs an attribute without notifications. Used while cloning.
func (m *NamedNodeMap) setAttr(attr *Attr) {
	attr.ownerElement = m.owner
	m.attrs = append(m.attrs, attr)
}
