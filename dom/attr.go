package dom

// Attr represents a single attribute on an element. Attributes live outside
// the child tree: they have an owner element but no parent, siblings or
// children.
type Attr struct {
	localName    string
	name         string
	namespaceURI string
	prefix       string
	value        string
	ownerElement *Element
}

// NewAttr creates a detached attribute with the given qualified name and
// value.
func NewAttr(name, value string) *Attr {
	return &Attr{
		localName: name,
		name:      name,
		value:     value,
	}
}

// LocalName returns the attribute's local name.
func (a *Attr) LocalName() string {
	return a.localName
}

// Name returns the attribute's qualified name.
func (a *Attr) Name() string {
	return a.name
}

// NamespaceURI returns the attribute's namespace, or "".
func (a *Attr) NamespaceURI() string {
	return a.namespaceURI
}

// Prefix returns the attribute's namespace prefix, or "".
func (a *Attr) Prefix() string {
	return a.prefix
}

// Value returns the attribute's value.
func (a *Attr) Value() string {
	return a.value
}

// SetValue changes the attribute's value, raising an attribute mutation on
// the owner element when attached.
func (a *Attr) SetValue(value string) {
	oldValue := a.value
	a.value = value
	if a.ownerElement != nil {
		notifyAttributeMutation((*Node)(a.ownerElement), a.localName, a.namespaceURI, oldValue, true)
	}
}

// OwnerElement returns the element this attribute is attached to, or nil.
func (a *Attr) OwnerElement() *Element {
	return a.ownerElement
}

func (a *Attr) clone() *Attr {
	return &Attr{
		localName:    a.localName,
		name:         a.name,
		namespaceURI: a.namespaceURI,
		prefix:       a.prefix,
		value:        a.value,
	}
}
