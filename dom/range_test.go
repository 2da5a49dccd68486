package dom

import "testing"

// rangeFixture builds <root><p>[#text "hello"]</p><q>[#text "world"]</q></root>
func rangeFixture(t *testing.T) (*Document, *Node, *Node, *Node, *Node, *Node) {
	t.Helper()
	doc := NewDocument()
	root := doc.CreateElement("root")
	doc.AsNode().AppendChild(root)
	p := doc.CreateElement("p")
	root.AppendChild(p)
	hello := doc.CreateTextNode("hello")
	p.AppendChild(hello)
	q := doc.CreateElement("q")
	root.AppendChild(q)
	world := doc.CreateTextNode("world")
	q.AppendChild(world)
	return doc, root, p, hello, q, world
}

func TestRangeStartEndInvariant(t *testing.T) {
	doc, _, _, hello, _, world := rangeFixture(t)

	r := doc.CreateRange()
	if !r.Collapsed() {
		t.Error("new range should be collapsed")
	}

	if err := r.SetStart(hello, 1); err != nil {
		t.Fatal(err)
	}
	if err := r.SetEnd(world, 3); err != nil {
		t.Fatal(err)
	}
	if r.Collapsed() {
		t.Error("range should span content")
	}

	// Setting the start after the current end collapses to the start.
	if err := r.SetStart(world, 4); err != nil {
		t.Fatal(err)
	}
	if !r.Collapsed() || r.EndContainer() != world || r.EndOffset() != 4 {
		t.Errorf("range did not collapse to new start: %v/%d", r.EndContainer(), r.EndOffset())
	}

	// Setting the end before the current start collapses to the end.
	if err := r.SetEnd(hello, 2); err != nil {
		t.Fatal(err)
	}
	if !r.Collapsed() || r.StartContainer() != hello || r.StartOffset() != 2 {
		t.Errorf("range did not collapse to new end: %v/%d", r.StartContainer(), r.StartOffset())
	}
}

func TestRangeBoundaryValidation(t *testing.T) {
	doc, _, _, hello, _, _ := rangeFixture(t)
	r := doc.CreateRange()

	if err := r.SetStart(hello, 6); !IsDOMError(err, "IndexSizeError") {
		t.Errorf("oversized offset: expected IndexSizeError, got %v", err)
	}

	doctype := doc.CreateDocumentType("html", "", "")
	if err := r.SetStart(doctype, 0); !IsDOMError(err, "InvalidNodeTypeError") {
		t.Errorf("doctype container: expected InvalidNodeTypeError, got %v", err)
	}
	if err := r.SelectNodeContents(doctype); !IsDOMError(err, "InvalidNodeTypeError") {
		t.Errorf("SelectNodeContents on doctype: expected InvalidNodeTypeError, got %v", err)
	}

	orphan := doc.CreateElement("div")
	if err := r.SelectNode(orphan); !IsDOMError(err, "InvalidNodeTypeError") {
		t.Errorf("SelectNode without parent: expected InvalidNodeTypeError, got %v", err)
	}
}

func TestRangeSelectNode(t *testing.T) {
	doc, root, p, _, _, _ := rangeFixture(t)
	r := doc.CreateRange()

	if err := r.SelectNode(p); err != nil {
		t.Fatal(err)
	}
	if r.StartContainer() != root || r.StartOffset() != 0 {
		t.Errorf("start = %v/%d", r.StartContainer(), r.StartOffset())
	}
	if r.EndContainer() != root || r.EndOffset() != 1 {
		t.Errorf("end = %v/%d", r.EndContainer(), r.EndOffset())
	}

	if err := r.SelectNodeContents(p); err != nil {
		t.Fatal(err)
	}
	if r.StartContainer() != p || r.StartOffset() != 0 || r.EndOffset() != 1 {
		t.Error("SelectNodeContents should span the node's children")
	}
}

func TestComparePointsTotalOrder(t *testing.T) {
	doc, root, p, hello, q, world := rangeFixture(t)

	type point struct {
		node   *Node
		offset int
	}
	// Strictly increasing document order.
	points := []point{
		{root, 0},
		{p, 0},
		{hello, 0},
		{hello, 3},
		{p, 1},
		{root, 1},
		{q, 0},
		{world, 2},
		{root, 2},
	}
	_ = doc

	for i, a := range points {
		for j, b := range points {
			got, err := comparePoints(a.node, a.offset, b.node, b.offset)
			if err != nil {
				t.Fatalf("comparePoints(%d,%d): %v", i, j, err)
			}
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got != want {
				t.Errorf("comparePoints(points[%d], points[%d]) = %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestComparePointsDifferentTrees(t *testing.T) {
	doc, _, _, hello, _, _ := rangeFixture(t)
	lone := doc.CreateElement("div")

	if _, err := comparePoints(hello, 0, lone, 0); !IsDOMError(err, "WrongDocumentError") {
		t.Errorf("expected WrongDocumentError, got %v", err)
	}
}

func TestCompareBoundaryPoints(t *testing.T) {
	doc, _, _, hello, _, world := rangeFixture(t)

	r1 := doc.CreateRange()
	mustSetRange(t, r1, hello, 0, hello, 4)
	r2 := doc.CreateRange()
	mustSetRange(t, r2, hello, 2, world, 3)

	cases := []struct {
		how  int
		want int
	}{
		{StartToStart, -1},
		{StartToEnd, 1},
		{EndToEnd, -1},
		{EndToStart, -1},
	}
	for _, tc := range cases {
		got, err := r1.CompareBoundaryPoints(tc.how, r2)
		if err != nil {
			t.Fatalf("how=%d: %v", tc.how, err)
		}
		if got != tc.want {
			t.Errorf("CompareBoundaryPoints(how=%d) = %d, want %d", tc.how, got, tc.want)
		}
	}

	if _, err := r1.CompareBoundaryPoints(7, r2); !IsDOMError(err, "NotSupportedError") {
		t.Errorf("bad how: expected NotSupportedError, got %v", err)
	}
}

func mustSetRange(t *testing.T, r *Range, sn *Node, so int, en *Node, eo int) {
	t.Helper()
	if err := r.SetStart(sn, so); err != nil {
		t.Fatal(err)
	}
	if err := r.SetEnd(en, eo); err != nil {
		t.Fatal(err)
	}
}

func TestRangeString(t *testing.T) {
	doc, _, _, hello, _, world := rangeFixture(t)
	r := doc.CreateRange()
	mustSetRange(t, r, hello, 3, world, 2)

	if got := r.String(); got != "lowo" {
		t.Errorf("String = %q, want %q", got, "lowo")
	}

	r2 := doc.CreateRange()
	mustSetRange(t, r2, hello, 1, hello, 4)
	if got := r2.String(); got != "ell" {
		t.Errorf("same-container String = %q, want %q", got, "ell")
	}
}

func TestDeleteContents(t *testing.T) {
	doc, _, p, hello, _, world := rangeFixture(t)
	r := doc.CreateRange()
	mustSetRange(t, r, hello, 3, world, 2)

	if err := r.DeleteContents(); err != nil {
		t.Fatal(err)
	}
	if hello.NodeValue() != "hel" {
		t.Errorf("start text = %q, want %q", hello.NodeValue(), "hel")
	}
	if world.NodeValue() != "rld" {
		t.Errorf("end text = %q, want %q", world.NodeValue(), "rld")
	}
	if !r.Collapsed() {
		t.Error("range should collapse after DeleteContents")
	}
	if p.ParentNode() == nil {
		t.Error("partially contained element must survive")
	}
}

func TestExtractContents(t *testing.T) {
	doc, root, p, hello, q, world := rangeFixture(t)
	r := doc.CreateRange()
	mustSetRange(t, r, hello, 3, world, 2)

	frag, err := r.ExtractContents()
	if err != nil {
		t.Fatal(err)
	}
	if frag.NodeType() != DocumentFragmentNode {
		t.Fatal("ExtractContents should return a fragment")
	}

	// The fragment holds clones of the split elements with the moved
	// text halves.
	if got := frag.TextContent(); got != "lowo" {
		t.Errorf("fragment text = %q, want %q", got, "lowo")
	}
	if hello.NodeValue() != "hel" || world.NodeValue() != "rld" {
		t.Errorf("tree text = %q/%q, want hel/rld", hello.NodeValue(), world.NodeValue())
	}
	// Both partially contained elements stay in the tree.
	if p.ParentNode() != root || q.ParentNode() != root {
		t.Error("split elements must remain in the tree")
	}
	if !r.Collapsed() {
		t.Error("range should collapse after extraction")
	}
}

func TestCloneContentsLeavesTreeIntact(t *testing.T) {
	doc, _, _, hello, _, world := rangeFixture(t)
	r := doc.CreateRange()
	mustSetRange(t, r, hello, 3, world, 2)

	frag, err := r.CloneContents()
	if err != nil {
		t.Fatal(err)
	}
	if got := frag.TextContent(); got != "lowo" {
		t.Errorf("fragment text = %q, want %q", got, "lowo")
	}
	if hello.NodeValue() != "hello" || world.NodeValue() != "world" {
		t.Error("CloneContents must not mutate the tree")
	}
	if r.Collapsed() {
		t.Error("CloneContents must not collapse the range")
	}
}

func TestInsertNodeSplitsText(t *testing.T) {
	doc, _, p, hello, _, _ := rangeFixture(t)
	r := doc.CreateRange()
	mustSetRange(t, r, hello, 2, hello, 2)

	em := doc.CreateElement("em")
	if err := r.InsertNode(em); err != nil {
		t.Fatal(err)
	}

	if p.ChildNodes().Length() != 3 {
		t.Fatalf("got %d children, want text+em+text", p.ChildNodes().Length())
	}
	if p.FirstChild().NodeValue() != "he" {
		t.Errorf("head = %q", p.FirstChild().NodeValue())
	}
	if p.FirstChild().NextSibling() != em {
		t.Error("inserted node not between the halves")
	}
	if p.LastChild().NodeValue() != "llo" {
		t.Errorf("tail = %q", p.LastChild().NodeValue())
	}
}

func TestInsertNodeIntoComment(t *testing.T) {
	doc, _, p, _, _, _ := rangeFixture(t)
	comment := doc.CreateComment("x")
	p.AppendChild(comment)

	r := doc.CreateRange()
	if err := r.SetStart(comment, 0); err != nil {
		t.Fatal(err)
	}
	if err := r.InsertNode(doc.CreateElement("em")); !IsDOMError(err, "HierarchyRequestError") {
		t.Errorf("expected HierarchyRequestError, got %v", err)
	}
}

func TestSurroundContents(t *testing.T) {
	doc, _, _, hello, _, _ := rangeFixture(t)
	r := doc.CreateRange()
	mustSetRange(t, r, hello, 1, hello, 4)

	wrapper := doc.CreateElement("em")
	if err := r.SurroundContents(wrapper); err != nil {
		t.Fatal(err)
	}
	if wrapper.TextContent() != "ell" {
		t.Errorf("wrapped text = %q, want %q", wrapper.TextContent(), "ell")
	}
	if wrapper.ParentNode() == nil {
		t.Error("wrapper should be inserted into the tree")
	}

	// A range splitting a non-text node cannot be surrounded.
	_, _, p2, h2, _, w2 := rangeFixture(t)
	_ = p2
	r2 := h2.document().CreateRange()
	mustSetRange(t, r2, h2, 1, w2, 2)
	if err := r2.SurroundContents(h2.document().CreateElement("em")); !IsDOMError(err, "InvalidStateError") {
		t.Errorf("expected InvalidStateError, got %v", err)
	}
}

func TestLiveRangeFollowsNodeRemoval(t *testing.T) {
	doc, root, p, hello, q, _ := rangeFixture(t)
	_ = hello

	r := doc.CreateRange()
	if err := r.SelectNode(q); err != nil {
		t.Fatal(err)
	}

	// Removing an earlier sibling shifts the child offsets down.
	root.RemoveChild(p)
	if r.StartContainer() != root || r.StartOffset() != 0 || r.EndOffset() != 1 {
		t.Errorf("range = %v [%d,%d], want root [0,1]", r.StartContainer(), r.StartOffset(), r.EndOffset())
	}

	// Removing the selected node itself collapses the range to the hole.
	root.RemoveChild(q)
	if r.StartContainer() != root || r.StartOffset() != 0 || r.EndOffset() != 0 {
		t.Errorf("range = %v [%d,%d], want root [0,0]", r.StartContainer(), r.StartOffset(), r.EndOffset())
	}
}

func TestLiveRangeBoundaryInsideRemovedSubtree(t *testing.T) {
	doc, root, p, hello, _, _ := rangeFixture(t)

	r := doc.CreateRange()
	mustSetRange(t, r, hello, 1, hello, 4)

	index := indexOfChild(root, p)
	root.RemoveChild(p)

	if r.StartContainer() != root || r.StartOffset() != index {
		t.Errorf("start = %v/%d, want root/%d", r.StartContainer(), r.StartOffset(), index)
	}
	if r.EndContainer() != root || r.EndOffset() != index {
		t.Errorf("end = %v/%d, want root/%d", r.EndContainer(), r.EndOffset(), index)
	}
}

func TestLiveRangeFollowsInsertion(t *testing.T) {
	doc, root, _, _, q, _ := rangeFixture(t)

	r := doc.CreateRange()
	if err := r.SelectNode(q); err != nil {
		t.Fatal(err)
	}
	// q spans [1,2) under root; inserting before p shifts both.
	newFirst := doc.CreateElement("first")
	root.InsertBefore(newFirst, root.FirstChild())

	if r.StartOffset() != 2 || r.EndOffset() != 3 {
		t.Errorf("range offsets [%d,%d], want [2,3]", r.StartOffset(), r.EndOffset())
	}
}

func TestDetachedRangeStopsUpdating(t *testing.T) {
	doc, root, p, _, q, _ := rangeFixture(t)

	r := doc.CreateRange()
	if err := r.SelectNode(q); err != nil {
		t.Fatal(err)
	}
	r.Detach()

	root.RemoveChild(p)
	if r.StartOffset() != 1 || r.EndOffset() != 2 {
		t.Errorf("detached range moved: [%d,%d]", r.StartOffset(), r.EndOffset())
	}
}

func TestIsPointInRangeAndComparePoint(t *testing.T) {
	doc, _, _, hello, _, world := rangeFixture(t)
	r := doc.CreateRange()
	mustSetRange(t, r, hello, 1, world, 4)

	in, err := r.IsPointInRange(hello, 3)
	if err != nil || !in {
		t.Errorf("IsPointInRange(hello,3) = %v, %v; want true", in, err)
	}
	in, err = r.IsPointInRange(hello, 0)
	if err != nil || in {
		t.Errorf("IsPointInRange(hello,0) = %v, %v; want false", in, err)
	}

	cmp, err := r.ComparePoint(hello, 0)
	if err != nil || cmp != -1 {
		t.Errorf("ComparePoint before = %d, %v", cmp, err)
	}
	cmp, err = r.ComparePoint(world, 5)
	if err != nil || cmp != 1 {
		t.Errorf("ComparePoint after = %d, %v", cmp, err)
	}
	cmp, err = r.ComparePoint(world, 2)
	if err != nil || cmp != 0 {
		t.Errorf("ComparePoint inside = %d, %v", cmp, err)
	}
}

func TestStaticRangeDoesNotTrack(t *testing.T) {
	doc, root, p, hello, _, _ := rangeFixture(t)

	sr, err := NewStaticRange(hello, 1, hello, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !sr.Valid() {
		t.Error("fresh static range should be valid")
	}

	root.RemoveChild(p)

	// The boundary points are frozen; validity reflects the detached
	// subtree (both points still share a root, so it remains valid).
	if sr.StartContainer() != hello || sr.StartOffset() != 1 {
		t.Error("static range boundaries must not move")
	}

	doctype := doc.CreateDocumentType("html", "", "")
	if _, err := NewStaticRange(doctype, 0, doctype, 0); !IsDOMError(err, "InvalidNodeTypeError") {
		t.Errorf("expected InvalidNodeTypeError, got %v", err)
	}
}

func TestLiveRangeAdjustsWhenReplaceChildMovesNode(t *testing.T) {
	doc, root, _, _, q, _ := rangeFixture(t)
	extra := doc.CreateElement("extra")
	q.AppendChild(extra)

	// Range collapsed after q's last child; moving extra out via
	// ReplaceChild must pull the offset back in bounds.
	r := doc.CreateRange()
	if err := r.SetStart(q, 2); err != nil {
		t.Fatal(err)
	}
	r.Collapse(true)

	replacement := doc.CreateElement("replacement")
	root.AppendChild(replacement)
	root.ReplaceChild(extra, replacement)

	if r.StartContainer() != q || r.StartOffset() != 1 {
		t.Errorf("start = (%s, %d), want (q, 1)", r.StartContainer().NodeName(), r.StartOffset())
	}
}

func TestLiveRangeAnchoredInFragmentCollapses(t *testing.T) {
	doc, root, _, _, _, _ := rangeFixture(t)
	frag := doc.CreateDocumentFragment()
	frag.AppendChild(doc.CreateElement("a"))
	frag.AppendChild(doc.CreateElement("b"))

	r := doc.CreateRange()
	if err := r.SetStart(frag, 2); err != nil {
		t.Fatal(err)
	}
	r.Collapse(true)

	root.AppendChild(frag)

	if r.StartContainer() != frag || r.StartOffset() != 0 {
		t.Errorf("start = (%s, %d), want (frag, 0)", r.StartContainer().NodeName(), r.StartOffset())
	}
}

func TestRangeStringSkipsCommentBoundaries(t *testing.T) {
	doc, root, _, _, q, _ := rangeFixture(t)
	note := doc.CreateComment("note")
	root.InsertBefore(note, q)

	r := doc.CreateRange()
	if err := r.SetStart(note, 1); err != nil {
		t.Fatal(err)
	}
	if err := r.SetEnd(q, 1); err != nil {
		t.Fatal(err)
	}
	if got := r.String(); got != "world" {
		t.Errorf("String() = %q, want %q", got, "world")
	}

	// A comment as the sole container stringifies to nothing.
	r2 := doc.CreateRange()
	if err := r2.SetStart(note, 0); err != nil {
		t.Fatal(err)
	}
	if err := r2.SetEnd(note, 4); err != nil {
		t.Fatal(err)
	}
	if got := r2.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
