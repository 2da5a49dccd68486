package dom

import (
	"strings"
	"unsafe"
)

// Node is the universal unit of the document tree. Every concrete kind of
// node (Document, Element, Text, Comment, ...) is a typed view over this
// struct; the nodeType tag selects which payload field is meaningful.
//
// Siblings form an intrusive doubly-linked list; parentNode is a non-owning
// back reference. Removal only breaks links, it never frees anything: nodes
// are owned by their document and may still be referenced by queued mutation
// records or traversal cursors after removal.
type Node struct {
	nodeType NodeType
	nodeName string
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	childNodes *NodeList

	// data is the character data payload for text, comment, cdata-section
	// and processing-instruction nodes; nil for everything else.
	data *string

	// Type-specific payloads, at most one non-nil.
	elementData  *elementData
	documentData *documentData
	docTypeData  *docTypeData
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName    string
	tagName      string
	namespaceURI string
	prefix       string
	attributes   *NamedNodeMap
}

// docTypeData holds data specific to DocumentType nodes.
type docTypeData struct {
	name     string
	publicID string
	systemID string
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	n := &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
	n.childNodes = newNodeList(n)
	return n
}

// NodeType returns the type tag of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node: the uppercase tag name for
// elements, "#text" for text nodes, "#comment" for comments, "#document"
// for documents, and so on.
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the character data payload, or "" for node types that
// have none.
func (n *Node) NodeValue() string {
	if n.data != nil {
		return *n.data
	}
	return ""
}

// SetNodeValue replaces the character data payload. It is a no-op for node
// types without one. The replacement goes through the replace-data
// algorithm so observers see the old value and live ranges are adjusted.
func (n *Node) SetNodeValue(value string) {
	if cd := n.AsCharacterData(); cd != nil {
		_ = cd.SetData(value)
	}
}

// OwnerDocument returns the Document that owns this node, or nil for
// Document nodes themselves.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// document returns the owning document for internal dispatch, including for
// Document nodes (which own themselves).
func (n *Node) document() *Document {
	return n.ownerDoc
}

// ParentNode returns the parent of this node, or nil.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent if it is an element, or nil.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// ChildNodes returns a live NodeList of child nodes.
func (n *Node) ChildNodes() *NodeList {
	return n.childNodes
}

// FirstChild returns the first child node, or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling, or nil.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes reports whether the node has any children.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// GetRootNode returns the root of the tree containing this node, walking
// parent references.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// IsConnected reports whether the node is reachable from its document root.
func (n *Node) IsConnected() bool {
	root := n.GetRootNode()
	return root != nil && root.nodeType == DocumentNode
}

// AsElement returns the Element view of this node, or nil if it is not an
// element.
func (n *Node) AsElement() *Element {
	if n.nodeType == ElementNode {
		return (*Element)(n)
	}
	return nil
}

// AsCharacterData returns the CharacterData view of this node, or nil if
// it carries no character data payload.
func (n *Node) AsCharacterData() *CharacterData {
	if n.nodeType.IsCharacterData() {
		return (*CharacterData)(n)
	}
	return nil
}

// AsText returns the Text view of this node, or nil.
func (n *Node) AsText() *Text {
	if n.nodeType == TextNode {
		return (*Text)(n)
	}
	return nil
}

// TextContent returns the concatenated text of the node and its
// descendants; for character data nodes, the data itself.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return ""
	case TextNode, CommentNode, ProcessingInstructionNode, CDATASectionNode:
		return n.NodeValue()
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode, CDATASectionNode:
			sb.WriteString(child.NodeValue())
		case ElementNode, DocumentFragmentNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent replaces all children of an element or fragment with a
// single text node, or sets the data of a character data node.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return
	case TextNode, CommentNode, ProcessingInstructionNode, CDATASectionNode:
		n.SetNodeValue(value)
	default:
		for n.firstChild != nil {
			n.RemoveChild(n.firstChild)
		}
		if value != "" && n.ownerDoc != nil {
			n.AppendChild(n.ownerDoc.CreateTextNode(value))
		}
	}
}

// AppendChild adds a node to the end of this node's children, ignoring
// errors. Use AppendChildWithError when validation failures matter.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of this node's children.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts newChild before refChild (or appends when refChild
// is nil), ignoring errors.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts newChild before refChild, appending when
// refChild is nil. Validation happens before any mutation: on error the
// tree is untouched.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if err := n.validatePreInsertion(newChild, refChild); err != nil {
		return nil, err
	}
	return n.insert(newChild, refChild), nil
}

// validatePreInsertion implements the pre-insertion validation steps of
// https://dom.spec.whatwg.org/#concept-node-pre-insert
func (n *Node) validatePreInsertion(node, child *Node) error {
	return n.validatePreInsertionOrReplace(node, child, false)
}

func (n *Node) validatePreReplace(node, child *Node) error {
	return n.validatePreInsertionOrReplace(node, child, true)
}

func (n *Node) validatePreInsertionOrReplace(node, child *Node, isReplace bool) error {
	if !n.canHaveChildren() {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}
	if n.isInclusiveAncestor(node) {
		return ErrHierarchyRequest("The new child contains the parent.")
	}
	if child != nil && child.parentNode != n {
		return ErrNotFound("The reference node is not a child of this node.")
	}
	if !isValidChildType(node) {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}
	if node.nodeType == TextNode && n.nodeType == DocumentNode {
		return ErrHierarchyRequest("Cannot insert a Text node as a direct child of a Document.")
	}
	if node.nodeType == DocumentTypeNode && n.nodeType != DocumentNode {
		return ErrHierarchyRequest("DocumentType nodes can only be children of a Document.")
	}
	if n.nodeType == DocumentNode {
		return n.validateDocumentChild(node, child, isReplace)
	}
	return nil
}

// canHaveChildren reports whether this node type may hold children.
func (n *Node) canHaveChildren() bool {
	switch n.nodeType {
	case DocumentNode, DocumentFragmentNode, ElementNode:
		return true
	default:
		return false
	}
}

// isInclusiveAncestor reports whether node is this node or an ancestor of
// this node.
func (n *Node) isInclusiveAncestor(node *Node) bool {
	if node == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.parentNode {
		if cur == node {
			return true
		}
	}
	return false
}

func isValidChildType(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.nodeType {
	case DocumentFragmentNode, DocumentTypeNode, ElementNode, TextNode,
		ProcessingInstructionNode, CommentNode, CDATASectionNode:
		return true
	default:
		return false
	}
}

// validateDocumentChild enforces the "at most one element child, at most
// one doctype, doctype before element" document invariants. child is the
// insertion reference (or the node being replaced, when isReplace).
func (n *Node) validateDocumentChild(node, child *Node, isReplace bool) error {
	var exclude *Node
	if isReplace {
		exclude = child
	}

	switch node.nodeType {
	case DocumentFragmentNode:
		elementCount := 0
		for c := node.firstChild; c != nil; c = c.nextSibling {
			switch c.nodeType {
			case ElementNode:
				elementCount++
			case TextNode:
				return ErrHierarchyRequest("Cannot insert a Text node as a direct child of a Document.")
			}
		}
		if elementCount > 1 {
			return ErrHierarchyRequest("A Document can have only one element child.")
		}
		if elementCount == 1 {
			if n.hasElementChildExcluding(exclude) {
				return ErrHierarchyRequest("The Document already has a document element.")
			}
			if child != nil && !(isReplace && child.nodeType == ElementNode) {
				if child.nodeType == DocumentTypeNode || n.doctypeFollows(child) {
					return ErrHierarchyRequest("Cannot insert an element before the doctype.")
				}
			}
		}

	case ElementNode:
		if n.hasElementChildExcluding(exclude) {
			return ErrHierarchyRequest("The Document already has a document element.")
		}
		if child != nil && !(isReplace && child.nodeType == ElementNode) {
			if child.nodeType == DocumentTypeNode || n.doctypeFollows(child) {
				return ErrHierarchyRequest("Cannot insert an element before the doctype.")
			}
		}

	case DocumentTypeNode:
		if n.hasDoctypeExcluding(exclude) {
			return ErrHierarchyRequest("The Document already has a doctype.")
		}
		if n.hasElementChildExcluding(exclude) {
			if child == nil || n.elementPrecedesExcluding(child, exclude) {
				return ErrHierarchyRequest("Cannot insert a doctype after the document element.")
			}
		}
	}
	return nil
}

func (n *Node) hasElementChildExcluding(exclude *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c != exclude && c.nodeType == ElementNode {
			return true
		}
	}
	return false
}

func (n *Node) hasDoctypeExcluding(exclude *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c != exclude && c.nodeType == DocumentTypeNode {
			return true
		}
	}
	return false
}

func (n *Node) doctypeFollows(child *Node) bool {
	for c := child.nextSibling; c != nil; c = c.nextSibling {
		if c.nodeType == DocumentTypeNode {
			return true
		}
	}
	return false
}

func (n *Node) elementPrecedesExcluding(child, exclude *Node) bool {
	for c := n.firstChild; c != nil && c != child; c = c.nextSibling {
		if c != exclude && c.nodeType == ElementNode {
			return true
		}
	}
	return false
}

// insert performs the insertion after validation has passed. Fragments are
// flattened: their children leave the fragment as one removal batch, the
// fragment stays behind empty, and a single childList notification on the
// new parent covers the whole insertion.
func (n *Node) insert(newChild, refChild *Node) *Node {
	if newChild == nil {
		return nil
	}

	if newChild.nodeType == DocumentFragmentNode {
		var children []*Node
		for child := newChild.firstChild; child != nil; child = child.nextSibling {
			children = append(children, child)
		}
		if len(children) == 0 {
			return newChild
		}

		// The children leave the fragment as one batch with its own
		// record, so observers on the fragment and ranges anchored in
		// it see the removal.
		for _, child := range children {
			newChild.unlink(child)
		}
		notifyChildListMutation(newChild, nil, children, nil, nil)

		var prevSib *Node
		if refChild != nil {
			prevSib = refChild.prevSibling
		} else {
			prevSib = n.lastChild
		}

		for _, child := range children {
			n.link(child, refChild)
		}

		notifyChildListMutation(n, children, nil, prevSib, refChild)
		return newChild
	}

	if newChild == refChild {
		return newChild
	}

	var prevSib *Node
	if refChild != nil {
		prevSib = refChild.prevSibling
	} else {
		prevSib = n.lastChild
	}

	// Moving within or across trees: detach first, with its own
	// notification.
	if newChild.parentNode != nil {
		newChild.parentNode.RemoveChild(newChild)
		// Detaching may have shifted the captured sibling info.
		if refChild != nil {
			prevSib = refChild.prevSibling
		} else {
			prevSib = n.lastChild
		}
	}

	n.link(newChild, refChild)
	notifyChildListMutation(n, []*Node{newChild}, nil, prevSib, refChild)
	return newChild
}

// insertQuietly relinks a node without raising notifications. Used for
// fragment batches, which notify once for all children.
func (n *Node) insertQuietly(newChild, refChild *Node) {
	if newChild == nil {
		return
	}
	if newChild.parentNode != nil {
		newChild.parentNode.unlink(newChild)
	}
	n.link(newChild, refChild)
}

// link splices newChild into the sibling chain before refChild (or at the
// end when refChild is nil) and adopts it into this node's document. O(1).
func (n *Node) link(newChild, refChild *Node) {
	newChild.parentNode = n

	if n.ownerDoc != nil && newChild.ownerDoc != n.ownerDoc {
		adopt(newChild, n.ownerDoc)
	}

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
	} else {
		newChild.prevSibling = refChild.prevSibling
		newChild.nextSibling = refChild
		if refChild.prevSibling != nil {
			refChild.prevSibling.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		refChild.prevSibling = newChild
	}
}

// adopt recursively moves a node and its descendants into doc.
func adopt(node *Node, doc *Document) {
	node.ownerDoc = doc
	for child := node.firstChild; child != nil; child = child.nextSibling {
		adopt(child, doc)
	}
}

// RemoveChild removes a child node, ignoring errors.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node. Returns NotFoundError if the
// node is not a child of this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNotFound("The node to be removed is null.")
	}
	if child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}

	prevSib := child.prevSibling
	nextSib := child.nextSibling

	n.unlink(child)

	notifyChildListMutation(n, nil, []*Node{child}, prevSib, nextSib)
	return child, nil
}

// unlink removes child from this node's sibling chain. Traversal cursors
// get their pre-removing steps while the node is still linked, so they can
// reposition relative to the old location.
func (n *Node) unlink(child *Node) {
	if doc := n.document(); doc != nil {
		doc.runPreRemovingSteps(child)
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}

	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// ReplaceChild replaces oldChild with newChild, ignoring errors.
func (n *Node) ReplaceChild(newChild, oldChild *Node) *Node {
	result, _ := n.ReplaceChildWithError(newChild, oldChild)
	return result
}

// ReplaceChildWithError replaces oldChild with newChild. Returns the
// removed child. Validation happens before any mutation.
func (n *Node) ReplaceChildWithError(newChild, oldChild *Node) (*Node, error) {
	if oldChild == nil {
		return nil, ErrNotFound("The node to be replaced is null.")
	}
	if err := n.validatePreReplace(newChild, oldChild); err != nil {
		return nil, err
	}
	if newChild == oldChild {
		return oldChild, nil
	}

	if newChild.nodeType == DocumentFragmentNode {
		var children []*Node
		for child := newChild.firstChild; child != nil; child = child.nextSibling {
			children = append(children, child)
		}

		for _, child := range children {
			newChild.unlink(child)
		}
		if len(children) > 0 {
			notifyChildListMutation(newChild, nil, children, nil, nil)
		}

		prevSib := oldChild.prevSibling
		nextSib := oldChild.nextSibling
		referenceChild := oldChild.nextSibling

		n.unlink(oldChild)
		for _, child := range children {
			n.link(child, referenceChild)
		}

		notifyChildListMutation(n, children, []*Node{oldChild}, prevSib, nextSib)
		return oldChild, nil
	}

	// Moving: detach from the prior parent with its own notification, so
	// its observers and live ranges see the removal.
	if newChild.parentNode != nil {
		newChild.parentNode.RemoveChild(newChild)
	}

	prevSib := oldChild.prevSibling
	nextSib := oldChild.nextSibling
	referenceChild := oldChild.nextSibling

	n.unlink(oldChild)
	n.insertQuietly(newChild, referenceChild)

	notifyChildListMutation(n, []*Node{newChild}, []*Node{oldChild}, prevSib, nextSib)
	return oldChild, nil
}

// CloneNode creates a copy of this node, and of its whole subtree when deep
// is true. The clone is detached and unobserved.
func (n *Node) CloneNode(deep bool) *Node {
	clone := n.shallowClone()
	if deep {
		for child := n.firstChild; child != nil; child = child.nextSibling {
			clone.AppendChild(child.CloneNode(true))
		}
	}
	return clone
}

func (n *Node) shallowClone() *Node {
	clone := newNode(n.nodeType, n.nodeName, n.ownerDoc)

	if n.data != nil {
		value := *n.data
		clone.data = &value
	}

	switch n.nodeType {
	case ElementNode:
		if n.elementData != nil {
			clone.elementData = &elementData{
				localName:    n.elementData.localName,
				tagName:      n.elementData.tagName,
				namespaceURI: n.elementData.namespaceURI,
				prefix:       n.elementData.prefix,
			}
			clone.elementData.attributes = newNamedNodeMap((*Element)(clone))
			if n.elementData.attributes != nil {
				for _, attr := range n.elementData.attributes.attrs {
					clone.elementData.attributes.setAttr(attr.clone())
				}
			}
		}
	case DocumentTypeNode:
		if n.docTypeData != nil {
			dt := *n.docTypeData
			clone.docTypeData = &dt
		}
	case DocumentNode:
		clone.documentData = newDocumentData()
		if n.documentData != nil {
			clone.documentData.contentType = n.documentData.contentType
		}
		clone.ownerDoc = (*Document)(clone)
		clone.ownerDoc.registerCallback(&rangeUpdater{doc: clone.ownerDoc})
	}
	return clone
}

// Normalize merges adjacent text nodes and removes empty ones, recursively.
func (n *Node) Normalize() {
	var toRemove []*Node

	for child := n.firstChild; child != nil; {
		next := child.nextSibling

		if child.nodeType == TextNode {
			if child.NodeValue() == "" {
				toRemove = append(toRemove, child)
			} else {
				for next != nil && next.nodeType == TextNode {
					child.SetNodeValue(child.NodeValue() + next.NodeValue())
					toRemove = append(toRemove, next)
					next = next.nextSibling
				}
			}
		} else if child.nodeType == ElementNode {
			child.Normalize()
		}

		child = next
	}

	for _, node := range toRemove {
		n.RemoveChild(node)
	}
}

// Contains reports whether other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for node := other; node != nil; node = node.parentNode {
		if node == n {
			return true
		}
	}
	return false
}

// IsSameNode reports node identity.
func (n *Node) IsSameNode(other *Node) bool {
	return n == other
}

// IsEqualNode reports structural equality: same type, same type-specific
// properties, and pairwise-equal children.
func (n *Node) IsEqualNode(other *Node) bool {
	if other == nil || n.nodeType != other.nodeType {
		return false
	}

	switch n.nodeType {
	case ElementNode:
		if !elementsEqual(n, other) {
			return false
		}
	case DocumentTypeNode:
		d1, d2 := n.docTypeData, other.docTypeData
		if d1 == nil || d2 == nil {
			if d1 != d2 {
				return false
			}
		} else if *d1 != *d2 {
			return false
		}
	case ProcessingInstructionNode:
		if n.nodeName != other.nodeName || n.NodeValue() != other.NodeValue() {
			return false
		}
	case TextNode, CDATASectionNode, CommentNode:
		if n.NodeValue() != other.NodeValue() {
			return false
		}
	}

	c1, c2 := n.firstChild, other.firstChild
	for c1 != nil && c2 != nil {
		if !c1.IsEqualNode(c2) {
			return false
		}
		c1, c2 = c1.nextSibling, c2.nextSibling
	}
	return c1 == nil && c2 == nil
}

func elementsEqual(a, b *Node) bool {
	e1, e2 := a.elementData, b.elementData
	if e1 == nil || e2 == nil {
		return e1 == e2
	}
	if e1.namespaceURI != e2.namespaceURI || e1.prefix != e2.prefix || e1.localName != e2.localName {
		return false
	}
	var a1, a2 []*Attr
	if e1.attributes != nil {
		a1 = e1.attributes.attrs
	}
	if e2.attributes != nil {
		a2 = e2.attributes.attrs
	}
	if len(a1) != len(a2) {
		return false
	}
	for _, attr := range a1 {
		match := e2.attributes.GetNamedItemNS(attr.namespaceURI, attr.localName)
		if match == nil || match.value != attr.value {
			return false
		}
	}
	return true
}

// CompareDocumentPosition returns the web-platform bitmask describing where
// other sits relative to this node in document order.
func (n *Node) CompareDocumentPosition(other *Node) uint16 {
	if n == other {
		return 0
	}
	if other == nil {
		return DocumentPositionDisconnected | DocumentPositionImplementationSpecific
	}

	if n.GetRootNode() != other.GetRootNode() {
		// Disconnected nodes get an arbitrary but consistent order.
		pos := DocumentPositionDisconnected | DocumentPositionImplementationSpecific
		if nodeIdentOrder(n, other) {
			return pos | DocumentPositionFollowing
		}
		return pos | DocumentPositionPreceding
	}

	if n.Contains(other) {
		return DocumentPositionContainedBy | DocumentPositionFollowing
	}
	if other.Contains(n) {
		return DocumentPositionContains | DocumentPositionPreceding
	}

	// Siblings under the lowest common ancestor decide the order.
	chain := ancestorChain(n)
	for b := other; b != nil; b = b.parentNode {
		parent := b.parentNode
		if parent == nil {
			break
		}
		for _, a := range chain {
			if a.parentNode == parent {
				for c := parent.firstChild; c != nil; c = c.nextSibling {
					if c == a {
						return DocumentPositionFollowing
					}
					if c == b {
						return DocumentPositionPreceding
					}
				}
			}
		}
	}
	return DocumentPositionDisconnected | DocumentPositionImplementationSpecific
}

// nodeIdentOrder gives a stable ordering for disconnected nodes based on
// creation identity, so repeated comparisons agree with each other.
func nodeIdentOrder(a, b *Node) bool {
	return uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b))
}

// ancestorChain returns the inclusive ancestors of n, nearest first. Built
// on the heap: tree depth is unbounded.
func ancestorChain(n *Node) []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.parentNode {
		chain = append(chain, cur)
	}
	return chain
}

// Tree helpers shared by ranges, traversal and selection.

// indexOfChild returns the index of child within parent's child list, or -1.
func indexOfChild(parent, child *Node) int {
	index := 0
	for c := parent.firstChild; c != nil; c = c.nextSibling {
		if c == child {
			return index
		}
		index++
	}
	return -1
}

// nodeLength returns a node's length for boundary-point purposes: UTF-16
// code units for character data, child count otherwise.
func nodeLength(node *Node) int {
	switch node.nodeType {
	case TextNode, CommentNode, ProcessingInstructionNode, CDATASectionNode:
		return utf16Length(node.NodeValue())
	default:
		count := 0
		for child := node.firstChild; child != nil; child = child.nextSibling {
			count++
		}
		return count
	}
}

// isAncestor reports whether ancestor is a proper ancestor of node.
func isAncestor(ancestor, node *Node) bool {
	for cur := node.parentNode; cur != nil; cur = cur.parentNode {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// childAtIndex returns parent's child at index, or nil.
func childAtIndex(parent *Node, index int) *Node {
	if index < 0 {
		return nil
	}
	child := parent.firstChild
	for i := 0; i < index && child != nil; i++ {
		child = child.nextSibling
	}
	return child
}

// following returns the node after n in document order, bounded by root:
// first child if any, else the next sibling of the nearest inclusive
// ancestor that is still inside root's subtree.
func following(n, root *Node) *Node {
	if n.firstChild != nil {
		return n.firstChild
	}
	for cur := n; cur != nil && cur != root; cur = cur.parentNode {
		if cur.nextSibling != nil {
			return cur.nextSibling
		}
	}
	return nil
}

// followingSkippingChildren returns the node after n in document order
// without descending into n, bounded by root.
func followingSkippingChildren(n, root *Node) *Node {
	for cur := n; cur != nil && cur != root; cur = cur.parentNode {
		if cur.nextSibling != nil {
			return cur.nextSibling
		}
	}
	return nil
}

// preceding returns the node before n in document order, bounded by root:
// the deepest last descendant of the previous sibling if any, else the
// parent.
func preceding(n, root *Node) *Node {
	if n == root {
		return nil
	}
	if n.prevSibling != nil {
		cur := n.prevSibling
		for cur.lastChild != nil {
			cur = cur.lastChild
		}
		return cur
	}
	return n.parentNode
}
