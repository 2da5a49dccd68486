package dom

import "testing"

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML(`<!DOCTYPE html><html><body><p id="greeting">hello <b>dom</b></p></body></html>`)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Doctype() == nil {
		t.Error("doctype not converted")
	}
	html := doc.DocumentElement()
	if html == nil || html.LocalName() != "html" {
		t.Fatal("document element missing")
	}

	p := doc.GetElementById("greeting")
	if p == nil {
		t.Fatal("GetElementById failed on parsed tree")
	}
	if got := p.AsNode().TextContent(); got != "hello dom" {
		t.Errorf("TextContent = %q, want %q", got, "hello dom")
	}

	bolds := doc.GetElementsByTagName("b")
	if bolds.Length() != 1 {
		t.Errorf("found %d <b> elements, want 1", bolds.Length())
	}
}

func TestParseFragment(t *testing.T) {
	doc := NewDocument()
	frag, err := doc.ParseFragment(`<span>a</span><span>b</span>`)
	if err != nil {
		t.Fatal(err)
	}
	if frag.NodeType() != DocumentFragmentNode {
		t.Fatal("ParseFragment should return a fragment")
	}
	if frag.ChildNodes().Length() != 2 {
		t.Errorf("got %d children, want 2", frag.ChildNodes().Length())
	}

	// Inserting the fragment moves its children.
	host := doc.CreateElement("div")
	host.AppendChild(frag)
	if got := host.TextContent(); got != "ab" {
		t.Errorf("TextContent = %q, want %q", got, "ab")
	}
}

func TestCreateContextualFragment(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")

	r := doc.CreateRange()
	if err := r.SelectNodeContents(div); err != nil {
		t.Fatal(err)
	}

	frag, err := r.CreateContextualFragment(`<em>one</em> two`)
	if err != nil {
		t.Fatal(err)
	}
	if frag.NodeType() != DocumentFragmentNode {
		t.Fatal("CreateContextualFragment should return a fragment")
	}
	if got := frag.TextContent(); got != "one two" {
		t.Errorf("TextContent = %q, want %q", got, "one two")
	}

	div.AppendChild(frag)
	if div.FirstChild().NodeName() != "EM" {
		t.Errorf("first child = %s, want EM", div.FirstChild().NodeName())
	}
}
