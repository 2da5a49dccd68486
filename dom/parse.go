package dom

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML document and converts it into a node tree.
func ParseHTML(input string) (*Document, error) {
	parsed, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, errors.Wrap(err, "parsing html")
	}

	doc := NewDocument()
	convertHTMLChildren(doc, (*Node)(doc), parsed)
	return doc, nil
}

// ParseFragment parses an HTML fragment in the context of a body element
// and returns its contents as a document fragment owned by doc.
func (d *Document) ParseFragment(input string) (*Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(input), fragmentContext("body"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing html fragment")
	}

	frag := d.CreateDocumentFragment()
	for _, n := range nodes {
		convertHTMLNode(d, frag, n)
	}
	return frag, nil
}

// CreateContextualFragment parses markup in the context of the range's start
// node and returns the result as a document fragment.
func (r *Range) CreateContextualFragment(input string) (*Node, error) {
	contextName := "body"
	for node := r.startContainer; node != nil; node = node.parentNode {
		if node.nodeType == ElementNode {
			contextName = (*Element)(node).LocalName()
			break
		}
	}

	nodes, err := html.ParseFragment(strings.NewReader(input), fragmentContext(contextName))
	if err != nil {
		return nil, errors.Wrap(err, "parsing contextual fragment")
	}

	frag := r.doc.CreateDocumentFragment()
	for _, n := range nodes {
		convertHTMLNode(r.doc, frag, n)
	}
	return frag, nil
}

// fragmentContext builds the context element ParseFragment requires. The
// DataAtom must agree with Data or the parser rejects the node.
func fragmentContext(name string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
}

func convertHTMLChildren(doc *Document, parent *Node, src *html.Node) {
	for child := src.FirstChild; child != nil; child = child.NextSibling {
		convertHTMLNode(doc, parent, child)
	}
}

func convertHTMLNode(doc *Document, parent *Node, src *html.Node) {
	switch src.Type {
	case html.ElementNode:
		el, err := doc.CreateElementWithError(src.Data)
		if err != nil {
			return
		}
		for _, attr := range src.Attr {
			a := NewAttr(attr.Key, attr.Val)
			a.namespaceURI = attr.Namespace
			_, _ = (*Element)(el).Attributes().SetNamedItem(a)
		}
		parent.AppendChild(el)
		convertHTMLChildren(doc, el, src)
	case html.TextNode:
		parent.AppendChild(doc.CreateTextNode(src.Data))
	case html.CommentNode:
		parent.AppendChild(doc.CreateComment(src.Data))
	case html.DoctypeNode:
		parent.AppendChild(doc.CreateDocumentType(src.Data, "", ""))
	case html.DocumentNode:
		convertHTMLChildren(doc, parent, src)
	}
}
