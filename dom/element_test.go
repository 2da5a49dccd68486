package dom

import "testing"

func TestElementAttributes(t *testing.T) {
	doc := NewDocument()
	el := (*Element)(doc.CreateElement("div"))

	if el.HasAttribute("id") {
		t.Error("fresh element has no attributes")
	}
	el.SetAttribute("id", "x")
	if !el.HasAttribute("id") || el.GetAttribute("id") != "x" {
		t.Error("SetAttribute/GetAttribute round trip failed")
	}

	el.SetAttribute("id", "y")
	if el.GetAttribute("id") != "y" || el.Attributes().Length() != 1 {
		t.Error("setting an existing attribute must replace its value")
	}

	el.RemoveAttribute("id")
	if el.HasAttribute("id") {
		t.Error("RemoveAttribute failed")
	}
	if el.GetAttribute("id") != "" {
		t.Error("missing attribute reads as empty string")
	}
}

func TestRemoveAttributeNodeDetached(t *testing.T) {
	doc := NewDocument()
	el := (*Element)(doc.CreateElement("div"))
	stray := NewAttr("id", "x")

	if _, err := el.RemoveAttributeNode(stray); !IsDOMError(err, "NotFoundError") {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestSetAttributeNodeInUse(t *testing.T) {
	doc := NewDocument()
	a := (*Element)(doc.CreateElement("a"))
	b := (*Element)(doc.CreateElement("b"))

	attr := NewAttr("id", "x")
	if _, err := a.SetAttributeNode(attr); err != nil {
		t.Fatal(err)
	}
	if _, err := b.SetAttributeNode(attr); !IsDOMError(err, "InUseAttributeError") {
		t.Errorf("expected InUseAttributeError, got %v", err)
	}
}

func TestToggleAttribute(t *testing.T) {
	doc := NewDocument()
	el := (*Element)(doc.CreateElement("div"))

	if !el.ToggleAttribute("hidden") {
		t.Error("first toggle should add the attribute")
	}
	if el.ToggleAttribute("hidden") {
		t.Error("second toggle should remove it")
	}
	if el.HasAttribute("hidden") {
		t.Error("attribute should be gone after toggling twice")
	}
}

func TestHTMLDocumentCasing(t *testing.T) {
	doc := NewDocument()
	el, err := doc.CreateElementWithError("DiV")
	if err != nil {
		t.Fatal(err)
	}
	if (*Element)(el).TagName() != "DIV" || (*Element)(el).LocalName() != "div" {
		t.Errorf("tagName/localName = %q/%q", (*Element)(el).TagName(), (*Element)(el).LocalName())
	}

	xml := NewXMLDocument()
	el, err = xml.CreateElementWithError("DiV")
	if err != nil {
		t.Fatal(err)
	}
	if (*Element)(el).TagName() != "DiV" {
		t.Errorf("XML documents preserve case, got %q", (*Element)(el).TagName())
	}

	if _, err := doc.CreateElementWithError("not valid!"); !IsDOMError(err, "InvalidCharacterError") {
		t.Errorf("expected InvalidCharacterError, got %v", err)
	}
}

func TestCDATAOnlyInXMLDocuments(t *testing.T) {
	html := NewDocument()
	if _, err := html.CreateCDATASection("x"); !IsDOMError(err, "NotSupportedError") {
		t.Errorf("expected NotSupportedError, got %v", err)
	}

	xml := NewXMLDocument()
	node, err := xml.CreateCDATASection("x")
	if err != nil {
		t.Fatal(err)
	}
	if node.NodeType() != CDATASectionNode {
		t.Error("CreateCDATASection returned wrong node type")
	}
	if _, err := xml.CreateCDATASection("a]]>b"); !IsDOMError(err, "InvalidCharacterError") {
		t.Errorf("expected InvalidCharacterError, got %v", err)
	}
}

func TestElementChildHelpers(t *testing.T) {
	doc := NewDocument()
	el := (*Element)(doc.CreateElement("div"))
	el.AsNode().AppendChild(doc.CreateTextNode("x"))
	a := doc.CreateElement("a")
	el.AsNode().AppendChild(a)
	el.AsNode().AppendChild(doc.CreateComment("c"))
	b := doc.CreateElement("b")
	el.AsNode().AppendChild(b)

	if el.ChildElementCount() != 2 {
		t.Errorf("ChildElementCount = %d, want 2", el.ChildElementCount())
	}
	if el.FirstElementChild().AsNode() != a || el.LastElementChild().AsNode() != b {
		t.Error("first/last element child wrong")
	}
}
