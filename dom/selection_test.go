package dom

import "testing"

// selectionFixture builds <root>[#text "one two"]<b>[#text "three"]</b></root>
func selectionFixture(t *testing.T) (*Document, *Node, *Node, *Node) {
	t.Helper()
	doc := NewDocument()
	root := doc.CreateElement("root")
	doc.AsNode().AppendChild(root)
	first := doc.CreateTextNode("one two")
	root.AppendChild(first)
	b := doc.CreateElement("b")
	root.AppendChild(b)
	second := doc.CreateTextNode("three")
	b.AppendChild(second)
	return doc, root, first, second
}

func TestSelectionEmptyState(t *testing.T) {
	doc, _, _, _ := selectionFixture(t)
	sel := doc.GetSelection()

	if sel.RangeCount() != 0 {
		t.Error("new selection should hold no range")
	}
	if sel.Direction() != DirectionNone {
		t.Errorf("direction = %q, want none", sel.Direction())
	}
	if !sel.IsCollapsed() {
		t.Error("empty selection reports collapsed")
	}
	if sel.AnchorNode() != nil || sel.FocusNode() != nil {
		t.Error("empty selection has no anchor or focus")
	}
	if _, err := sel.GetRangeAt(0); !IsDOMError(err, "IndexSizeError") {
		t.Errorf("expected IndexSizeError, got %v", err)
	}
	if sel.String() != "" {
		t.Error("empty selection stringifies to \"\"")
	}
}

func TestSelectionSameInstance(t *testing.T) {
	doc, _, _, _ := selectionFixture(t)
	if doc.GetSelection() != doc.GetSelection() {
		t.Error("GetSelection must return the document's single selection")
	}
}

func TestSelectionCollapseAndErrors(t *testing.T) {
	doc, _, first, _ := selectionFixture(t)
	sel := doc.GetSelection()

	if err := sel.Collapse(first, 3); err != nil {
		t.Fatal(err)
	}
	if sel.RangeCount() != 1 || !sel.IsCollapsed() {
		t.Error("collapse should produce a collapsed range")
	}
	if sel.AnchorNode() != first || sel.AnchorOffset() != 3 {
		t.Errorf("anchor = %v/%d", sel.AnchorNode(), sel.AnchorOffset())
	}

	if err := sel.Collapse(first, 99); !IsDOMError(err, "IndexSizeError") {
		t.Errorf("expected IndexSizeError, got %v", err)
	}

	if err := sel.Collapse(nil, 0); err != nil {
		t.Fatal(err)
	}
	if sel.RangeCount() != 0 {
		t.Error("collapse to nil empties the selection")
	}

	if err := sel.CollapseToStart(); !IsDOMError(err, "InvalidStateError") {
		t.Errorf("expected InvalidStateError, got %v", err)
	}
}

func TestSelectionExtendForwardBackward(t *testing.T) {
	doc, _, first, second := selectionFixture(t)
	sel := doc.GetSelection()

	if err := sel.Extend(first, 1); !IsDOMError(err, "InvalidStateError") {
		t.Errorf("extend without range: expected InvalidStateError, got %v", err)
	}

	if err := sel.Collapse(first, 3); err != nil {
		t.Fatal(err)
	}

	// Extending forward keeps the anchor at the start.
	if err := sel.Extend(second, 2); err != nil {
		t.Fatal(err)
	}
	if sel.Direction() != DirectionForward {
		t.Errorf("direction = %q, want forward", sel.Direction())
	}
	if sel.AnchorNode() != first || sel.AnchorOffset() != 3 {
		t.Errorf("anchor moved: %v/%d", sel.AnchorNode(), sel.AnchorOffset())
	}
	if sel.FocusNode() != second || sel.FocusOffset() != 2 {
		t.Errorf("focus = %v/%d", sel.FocusNode(), sel.FocusOffset())
	}

	// Extending back past the anchor flips the direction; the anchor
	// stays put even though it is now the range's end.
	if err := sel.Extend(first, 1); err != nil {
		t.Fatal(err)
	}
	if sel.Direction() != DirectionBackward {
		t.Errorf("direction = %q, want backward", sel.Direction())
	}
	if sel.AnchorNode() != first || sel.AnchorOffset() != 3 {
		t.Errorf("anchor = %v/%d, want first/3", sel.AnchorNode(), sel.AnchorOffset())
	}
	if sel.FocusNode() != first || sel.FocusOffset() != 1 {
		t.Errorf("focus = %v/%d, want first/1", sel.FocusNode(), sel.FocusOffset())
	}
	r, err := sel.GetRangeAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if r.StartOffset() != 1 || r.EndOffset() != 3 {
		t.Error("backward selection still stores a normalized range")
	}
}

func TestSetBaseAndExtent(t *testing.T) {
	doc, _, first, second := selectionFixture(t)
	sel := doc.GetSelection()

	if err := sel.SetBaseAndExtent(second, 3, first, 2); err != nil {
		t.Fatal(err)
	}
	if sel.Direction() != DirectionBackward {
		t.Errorf("direction = %q, want backward", sel.Direction())
	}
	if sel.AnchorNode() != second || sel.FocusNode() != first {
		t.Error("anchor/focus should follow base/extent")
	}

	if err := sel.SetBaseAndExtent(first, 0, second, 5); err != nil {
		t.Fatal(err)
	}
	if sel.Direction() != DirectionForward {
		t.Errorf("direction = %q, want forward", sel.Direction())
	}
	if got := sel.String(); got != "one twothree" {
		t.Errorf("String = %q, want %q", got, "one twothree")
	}
}

func TestSelectAllChildren(t *testing.T) {
	doc, root, _, _ := selectionFixture(t)
	sel := doc.GetSelection()

	if err := sel.SelectAllChildren(root); err != nil {
		t.Fatal(err)
	}
	r, err := sel.GetRangeAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if r.StartContainer() != root || r.StartOffset() != 0 || r.EndOffset() != 2 {
		t.Error("SelectAllChildren should span all children")
	}
}

func TestSelectionContainsNode(t *testing.T) {
	doc, root, first, second := selectionFixture(t)
	sel := doc.GetSelection()

	if err := sel.SetBaseAndExtent(first, 2, second, 2); err != nil {
		t.Fatal(err)
	}

	b := root.LastChild()
	if sel.ContainsNode(b, false) {
		t.Error("partially selected node is not fully contained")
	}
	if !sel.ContainsNode(b, true) {
		t.Error("partially selected node intersects the selection")
	}
	if sel.ContainsNode(nil, true) {
		t.Error("nil node is never contained")
	}
}

func TestSelectionDeleteFromDocument(t *testing.T) {
	doc, _, first, second := selectionFixture(t)
	sel := doc.GetSelection()

	if err := sel.SetBaseAndExtent(first, 3, second, 5); err != nil {
		t.Fatal(err)
	}
	if err := sel.DeleteFromDocument(); err != nil {
		t.Fatal(err)
	}
	if first.NodeValue() != "one" {
		t.Errorf("remaining text = %q, want %q", first.NodeValue(), "one")
	}
	if !sel.IsCollapsed() {
		t.Error("selection collapses after deletion")
	}
}

func TestModifyCharacter(t *testing.T) {
	doc, _, first, _ := selectionFixture(t)
	sel := doc.GetSelection()

	if err := sel.Collapse(first, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.Modify(AlterMove, "forward", GranularityCharacter); err != nil {
		t.Fatal(err)
	}
	if sel.FocusNode() != first || sel.FocusOffset() != 1 {
		t.Errorf("focus = %v/%d, want first/1", sel.FocusNode(), sel.FocusOffset())
	}

	if err := sel.Modify(AlterExtend, "forward", GranularityCharacter); err != nil {
		t.Fatal(err)
	}
	if sel.IsCollapsed() {
		t.Error("extend should grow the selection")
	}
	if got := sel.String(); got != "n" {
		t.Errorf("selected = %q, want %q", got, "n")
	}

	if err := sel.Modify(AlterMove, "backward", GranularityCharacter); err != nil {
		t.Fatal(err)
	}
	if sel.FocusOffset() != 1 {
		t.Errorf("focus offset = %d, want 1", sel.FocusOffset())
	}
}

func TestModifyCharacterCrossesNodes(t *testing.T) {
	doc, _, first, second := selectionFixture(t)
	sel := doc.GetSelection()

	// At the end of the first text node, a character step lands inside
	// the next text node.
	if err := sel.Collapse(first, 7); err != nil {
		t.Fatal(err)
	}
	if err := sel.Modify(AlterMove, "forward", GranularityCharacter); err != nil {
		t.Fatal(err)
	}
	if sel.FocusNode() != second || sel.FocusOffset() != 1 {
		t.Errorf("focus = %v/%d, want second/1", sel.FocusNode(), sel.FocusOffset())
	}
}

func TestModifyWord(t *testing.T) {
	doc, _, first, second := selectionFixture(t)
	sel := doc.GetSelection()

	// "one two": from 0, a word step lands after "one".
	if err := sel.Collapse(first, 0); err != nil {
		t.Fatal(err)
	}
	if err := sel.Modify(AlterMove, "forward", GranularityWord); err != nil {
		t.Fatal(err)
	}
	if sel.FocusNode() != first || sel.FocusOffset() != 3 {
		t.Errorf("focus = %v/%d, want first/3", sel.FocusNode(), sel.FocusOffset())
	}

	// The next word step skips the space and consumes the word run,
	// which continues into the adjacent text node: "two" + "three" form
	// one unbroken run of word characters.
	if err := sel.Modify(AlterMove, "forward", GranularityWord); err != nil {
		t.Fatal(err)
	}
	if sel.FocusNode() != second || sel.FocusOffset() != 5 {
		t.Errorf("focus = %v/%d, want second/5", sel.FocusNode(), sel.FocusOffset())
	}

	// Extending backward by word selects the whole run.
	if err := sel.Modify(AlterExtend, "backward", GranularityWord); err != nil {
		t.Fatal(err)
	}
	if got := sel.String(); got != "twothree" {
		t.Errorf("selected = %q, want %q", got, "twothree")
	}
	if sel.Direction() != DirectionBackward {
		t.Errorf("direction = %q, want backward", sel.Direction())
	}
}

func TestAddRemoveRange(t *testing.T) {
	doc, _, first, _ := selectionFixture(t)
	sel := doc.GetSelection()

	r := doc.CreateRange()
	if err := r.SetStart(first, 0); err != nil {
		t.Fatal(err)
	}
	if err := r.SetEnd(first, 3); err != nil {
		t.Fatal(err)
	}
	sel.AddRange(r)
	if sel.RangeCount() != 1 {
		t.Fatal("AddRange should install the range")
	}

	// A second range is ignored; the selection holds at most one.
	other := doc.CreateRange()
	sel.AddRange(other)
	got, err := sel.GetRangeAt(0)
	if err != nil || got != r {
		t.Error("second AddRange should be ignored")
	}

	if err := sel.RemoveRange(other); !IsDOMError(err, "NotFoundError") {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if err := sel.RemoveRange(r); err != nil {
		t.Fatal(err)
	}
	if sel.RangeCount() != 0 {
		t.Error("RemoveRange should empty the selection")
	}
}
