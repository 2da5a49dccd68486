package dom

import (
	"strings"
)

// Document is the document view over a Node. Every document owns its own
// mutation dispatch state: callbacks, observers, live ranges, traversal
// cursors and the microtask scheduler all hang off the document rather
// than package globals, so independent documents never interfere.
type Document Node

// documentData holds the per-document state.
type documentData struct {
	contentType string

	// callbacks receive every mutation synchronously; the live-range
	// updater is one of them. Observers queue through the scheduler
	// instead.
	callbacks []MutationCallback
	observers []*MutationObserver

	ranges    map[*Range]struct{}
	iterators map[*NodeIterator]struct{}
	selection *Selection

	scheduler *Scheduler
}

func newDocumentData() *documentData {
	return &documentData{
		contentType: "text/html",
		ranges:      make(map[*Range]struct{}),
		iterators:   make(map[*NodeIterator]struct{}),
		scheduler:   newScheduler(),
	}
}

// NewDocument creates an empty HTML document.
func NewDocument() *Document {
	return newDocumentWithType("text/html")
}

// NewXMLDocument creates an empty XML document. XML documents may hold
// CDATA sections and keep element names case-sensitive.
func NewXMLDocument() *Document {
	return newDocumentWithType("application/xml")
}

func newDocumentWithType(contentType string) *Document {
	n := newNode(DocumentNode, "#document", nil)
	n.documentData = newDocumentData()
	n.documentData.contentType = contentType
	doc := (*Document)(n)
	n.ownerDoc = doc
	doc.registerCallback(&rangeUpdater{doc: doc})
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// ContentType returns the document's content type.
func (d *Document) ContentType() string {
	return d.documentData.contentType
}

// isHTML reports whether this is an HTML document.
func (d *Document) isHTML() bool {
	return d.documentData.contentType == "text/html"
}

// DocumentElement returns the document's root element, or nil.
func (d *Document) DocumentElement() *Element {
	for child := d.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Doctype returns the document's DocumentType child, or nil.
func (d *Document) Doctype() *Node {
	for child := d.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == DocumentTypeNode {
			return child
		}
	}
	return nil
}

// CreateElement creates a new element, ignoring errors.
func (d *Document) CreateElement(tagName string) *Node {
	n, _ := d.CreateElementWithError(tagName)
	return n
}

// CreateElementWithError creates a new element with the given tag name.
// HTML documents lowercase the local name and report the tag name
// uppercased.
func (d *Document) CreateElementWithError(tagName string) (*Node, error) {
	if !isValidName(tagName) {
		return nil, ErrInvalidCharacter("The tag name is not a valid name.")
	}

	localName := tagName
	displayName := tagName
	if d.isHTML() {
		localName = strings.ToLower(tagName)
		displayName = strings.ToUpper(tagName)
	}

	n := newNode(ElementNode, displayName, d)
	n.elementData = &elementData{
		localName: localName,
		tagName:   displayName,
	}
	n.elementData.attributes = newNamedNodeMap((*Element)(n))
	return n, nil
}

// CreateTextNode creates a new detached text node.
func (d *Document) CreateTextNode(data string) *Node {
	n := newNode(TextNode, "#text", d)
	n.data = &data
	return n
}

// CreateComment creates a new detached comment node.
func (d *Document) CreateComment(data string) *Node {
	n := newNode(CommentNode, "#comment", d)
	n.data = &data
	return n
}

// CreateCDATASection creates a CDATA section node. HTML documents cannot
// hold them.
func (d *Document) CreateCDATASection(data string) (*Node, error) {
	if d.isHTML() {
		return nil, ErrNotSupported("CDATA sections are not supported in HTML documents.")
	}
	if strings.Contains(data, "]]>") {
		return nil, ErrInvalidCharacter("CDATA section data cannot contain \"]]>\".")
	}
	n := newNode(CDATASectionNode, "#cdata-section", d)
	n.data = &data
	return n, nil
}

// CreateProcessingInstruction creates a processing instruction node.
func (d *Document) CreateProcessingInstruction(target, data string) (*Node, error) {
	if !isValidName(target) {
		return nil, ErrInvalidCharacter("The target is not a valid name.")
	}
	if strings.Contains(data, "?>") {
		return nil, ErrInvalidCharacter("Processing instruction data cannot contain \"?>\".")
	}
	n := newNode(ProcessingInstructionNode, target, d)
	n.data = &data
	return n, nil
}

// CreateDocumentFragment creates an empty document fragment.
func (d *Document) CreateDocumentFragment() *Node {
	return newNode(DocumentFragmentNode, "#document-fragment", d)
}

// CreateDocumentType creates a DocumentType node.
func (d *Document) CreateDocumentType(name, publicID, systemID string) *Node {
	n := newNode(DocumentTypeNode, name, d)
	n.docTypeData = &docTypeData{name: name, publicID: publicID, systemID: systemID}
	return n
}

// CreateAttribute creates a detached attribute node.
func (d *Document) CreateAttribute(name string) (*Attr, error) {
	if !isValidName(name) {
		return nil, ErrInvalidCharacter("The attribute name is not a valid name.")
	}
	if d.isHTML() {
		name = strings.ToLower(name)
	}
	return NewAttr(name, ""), nil
}

// GetElementById returns the first element in document order whose id
// attribute equals id, or nil.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return findElementById((*Node)(d), id)
}

func findElementById(root *Node, id string) *Element {
	for child := root.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			if (*Element)(child).GetAttribute("id") == id {
				return (*Element)(child)
			}
			if found := findElementById(child, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// GetElementsByTagName returns a static list of elements with the given
// tag name, in document order.
func (d *Document) GetElementsByTagName(name string) *NodeList {
	var matches []*Node
	collectElementsByTagName((*Node)(d), name, &matches)
	return newStaticNodeList(matches)
}

// AdoptNode moves a node (and its subtree) into this document, removing it
// from its current parent first. Documents cannot be adopted.
func (d *Document) AdoptNode(node *Node) (*Node, error) {
	if node.nodeType == DocumentNode {
		return nil, ErrNotSupported("Documents cannot be adopted.")
	}
	if node.parentNode != nil {
		node.parentNode.RemoveChild(node)
	}
	adopt(node, d)
	return node, nil
}

// ImportNode clones a node from another document into this one. The
// original is untouched. Documents cannot be imported.
func (d *Document) ImportNode(node *Node, deep bool) (*Node, error) {
	if node.nodeType == DocumentNode {
		return nil, ErrNotSupported("Documents cannot be imported.")
	}
	clone := node.CloneNode(deep)
	adopt(clone, d)
	return clone, nil
}

// Scheduler returns the document's microtask queue. Hosts drain it to run
// pending observer deliveries.
func (d *Document) Scheduler() *Scheduler {
	return d.documentData.scheduler
}

// registerCallback adds a synchronous mutation callback for this document.
func (d *Document) registerCallback(cb MutationCallback) {
	d.documentData.callbacks = append(d.documentData.callbacks, cb)
}

// runPreRemovingSteps repositions traversal cursors whose reference node is
// inside the subtree about to be removed. Called while the node is still
// linked into the tree.
func (d *Document) runPreRemovingSteps(node *Node) {
	if d.documentData == nil {
		return
	}
	for it := range d.documentData.iterators {
		it.preRemove(node)
	}
}

// isValidName is a pragmatic check for element, attribute and PI names:
// an ASCII letter, underscore or colon first, then name characters.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		case r > 0x7F:
		default:
			return false
		}
	}
	return true
}
