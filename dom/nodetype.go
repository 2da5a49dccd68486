// Package dom implements the core document object model of a headless
// browser engine: the node graph, filtered traversal (NodeIterator and
// TreeWalker), ranges and selections, and the mutation observation pipeline.
// It follows the DOM Living Standard, https://dom.spec.whatwg.org/
package dom

// NodeType represents the type of a Node as defined in the DOM specification.
type NodeType uint16

const (
	// ElementNode represents an Element node.
	ElementNode NodeType = 1
	// AttributeNode represents an Attr node.
	AttributeNode NodeType = 2
	// TextNode represents a Text node.
	TextNode NodeType = 3
	// CDATASectionNode represents a CDATASection node.
	CDATASectionNode NodeType = 4
	// ProcessingInstructionNode represents a ProcessingInstruction node.
	ProcessingInstructionNode NodeType = 7
	// CommentNode represents a Comment node.
	CommentNode NodeType = 8
	// DocumentNode represents a Document node.
	DocumentNode NodeType = 9
	// DocumentTypeNode represents a DocumentType node.
	DocumentTypeNode NodeType = 10
	// DocumentFragmentNode represents a DocumentFragment node.
	DocumentFragmentNode NodeType = 11
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case AttributeNode:
		return "ATTRIBUTE_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CDATASectionNode:
		return "CDATA_SECTION_NODE"
	case ProcessingInstructionNode:
		return "PROCESSING_INSTRUCTION_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	case DocumentTypeNode:
		return "DOCUMENT_TYPE_NODE"
	case DocumentFragmentNode:
		return "DOCUMENT_FRAGMENT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}

// IsCharacterData reports whether nodes of this type carry a character data
// payload.
func (nt NodeType) IsCharacterData() bool {
	switch nt {
	case TextNode, CDATASectionNode, ProcessingInstructionNode, CommentNode:
		return true
	default:
		return false
	}
}

// Document position bit flags returned by Node.CompareDocumentPosition.
// The values are fixed by the web platform and must not change.
const (
	DocumentPositionDisconnected           uint16 = 0x01
	DocumentPositionPreceding              uint16 = 0x02
	DocumentPositionFollowing              uint16 = 0x04
	DocumentPositionContains               uint16 = 0x08
	DocumentPositionContainedBy            uint16 = 0x10
	DocumentPositionImplementationSpecific uint16 = 0x20
)
