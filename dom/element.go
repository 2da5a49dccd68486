package dom

import (
	"strings"
)

// Element is the element view over a Node.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the element's qualified tag name, uppercased for HTML
// documents.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the element's lowercase local name.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// NamespaceURI returns the element's namespace, or "".
func (e *Element) NamespaceURI() string {
	return e.elementData.namespaceURI
}

// ID returns the element's id attribute, or "".
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// SetID sets the element's id attribute.
func (e *Element) SetID(id string) {
	e.SetAttribute("id", id)
}

// Attributes returns the element's attribute map.
func (e *Element) Attributes() *NamedNodeMap {
	return e.attributes()
}

// Tree surface delegated to the underlying node, so callers holding an
// element (script bindings in particular) need not convert first.

func (e *Element) AppendChild(child *Node) *Node {
	return e.AsNode().AppendChild(child)
}

func (e *Element) InsertBefore(newChild, refChild *Node) *Node {
	return e.AsNode().InsertBefore(newChild, refChild)
}

func (e *Element) RemoveChild(child *Node) *Node {
	return e.AsNode().RemoveChild(child)
}

func (e *Element) ReplaceChild(newChild, oldChild *Node) *Node {
	return e.AsNode().ReplaceChild(newChild, oldChild)
}

func (e *Element) ParentNode() *Node {
	return e.AsNode().ParentNode()
}

func (e *Element) ChildNodes() *NodeList {
	return e.AsNode().ChildNodes()
}

func (e *Element) FirstChild() *Node {
	return e.AsNode().FirstChild()
}

func (e *Element) LastChild() *Node {
	return e.AsNode().LastChild()
}

func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

func (e *Element) Contains(other *Node) bool {
	return e.AsNode().Contains(other)
}

func (e *Element) attributes() *NamedNodeMap {
	if e.elementData.attributes == nil {
		e.elementData.attributes = newNamedNodeMap(e)
	}
	return e.elementData.attributes
}

// GetAttribute returns the value of the named attribute, or "".
func (e *Element) GetAttribute(name string) string {
	if attr := e.attributes().GetNamedItem(name); attr != nil {
		return attr.value
	}
	return ""
}

// GetAttributeNode returns the named attribute node, or nil.
func (e *Element) GetAttributeNode(name string) *Attr {
	return e.attributes().GetNamedItem(name)
}

// HasAttribute reports whether the named attribute exists.
func (e *Element) HasAttribute(name string) bool {
	return e.attributes().GetNamedItem(name) != nil
}

// HasAttributes reports whether the element has any attributes.
func (e *Element) HasAttributes() bool {
	return e.attributes().Length() > 0
}

// SetAttribute sets the named attribute to value, creating it if absent.
func (e *Element) SetAttribute(name, value string) {
	attrs := e.attributes()
	if attr := attrs.GetNamedItem(name); attr != nil {
		attr.SetValue(value)
		return
	}
	attr := NewAttr(name, value)
	_, _ = attrs.SetNamedItem(attr)
}

// SetAttributeNode adds an attribute node, replacing any existing attribute
// with the same name. Returns the replaced attribute, or nil.
func (e *Element) SetAttributeNode(attr *Attr) (*Attr, error) {
	return e.attributes().SetNamedItem(attr)
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	_, _ = e.attributes().RemoveNamedItem(name)
}

// RemoveAttributeNode removes the given attribute node. Returns
// NotFoundError if it is not attached to this element.
func (e *Element) RemoveAttributeNode(attr *Attr) (*Attr, error) {
	if attr == nil || attr.ownerElement != e {
		return nil, ErrNotFound("The attribute is not owned by this element.")
	}
	return e.attributes().RemoveNamedItem(attr.name)
}

// ToggleAttribute adds the attribute with an empty value when absent and
// removes it when present. Returns whether the attribute is present after.
func (e *Element) ToggleAttribute(name string) bool {
	if e.HasAttribute(name) {
		e.RemoveAttribute(name)
		return false
	}
	e.SetAttribute(name, "")
	return true
}

// FirstElementChild returns the first child that is an element, or nil.
func (e *Element) FirstElementChild() *Element {
	for child := e.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// LastElementChild returns the last child that is an element, or nil.
func (e *Element) LastElementChild() *Element {
	for child := e.lastChild; child != nil; child = child.prevSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// ChildElementCount returns the number of element children.
func (e *Element) ChildElementCount() int {
	count := 0
	for child := e.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// GetElementsByTagName returns a static list of descendant elements with
// the given tag name, in document order. "*" matches every element.
func (e *Element) GetElementsByTagName(name string) *NodeList {
	var matches []*Node
	collectElementsByTagName((*Node)(e), name, &matches)
	return newStaticNodeList(matches)
}

func collectElementsByTagName(root *Node, name string, out *[]*Node) {
	for child := root.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			if name == "*" || strings.EqualFold(child.elementData.tagName, name) {
				*out = append(*out, child)
			}
			collectElementsByTagName(child, name, out)
		}
	}
}
