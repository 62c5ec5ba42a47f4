package wikirt

import "testing"

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()
	if body == nil {
		t.Fatal("Body() = nil")
	}
	if !body.IsElement("body") || body.Parent != doc {
		t.Errorf("body = %+v", body)
	}

	if (&Node{Type: ElementNode, Name: "div"}).Body() != nil {
		t.Error("Body() on a non-document should be nil")
	}
}

func TestNodeInBody(t *testing.T) {
	doc := NewDocument()
	top := doc.Body().AppendChild(elem("p"))
	nested := top.AppendChild(elem("i"))

	if !top.InBody() {
		t.Error("direct body child should be InBody")
	}
	if nested.InBody() {
		t.Error("nested node should not be InBody")
	}

	// A body element outside a document does not count.
	orphanBody := elem("body")
	child := orphanBody.AppendChild(elem("p"))
	if child.InBody() {
		t.Error("child of a detached body should not be InBody")
	}
}

func TestNodeNewlyInserted(t *testing.T) {
	n := elem("figure")
	if !n.NewlyInserted() {
		t.Error("node without source metadata should be newly inserted")
	}

	withSpan := elem("figure")
	withSpan.DP.DSR = &Span{Start: 0, End: 4}
	if withSpan.NewlyInserted() {
		t.Error("node with a source span is not newly inserted")
	}

	withSrc := elem("figure")
	withSrc.DP.Src = "[[File:X.png]]"
	if withSrc.NewlyInserted() {
		t.Error("node with recorded source is not newly inserted")
	}
}

func TestNodeNextSibling(t *testing.T) {
	parent := elem("p", textNode("a"), textNode("b"))
	first, second := parent.Children[0], parent.Children[1]

	if got := first.NextSibling(); got != second {
		t.Errorf("NextSibling() = %v, want second child", got)
	}
	if got := second.NextSibling(); got != nil {
		t.Errorf("NextSibling() of last child = %v, want nil", got)
	}
	if got := parent.NextSibling(); got != nil {
		t.Errorf("NextSibling() of root = %v, want nil", got)
	}
}

func TestNodeTextContent(t *testing.T) {
	n := elem("p",
		textNode("a"),
		elem("i", textNode("b")),
		textNode("c"),
	)
	if got := n.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want %q", got, "abc")
	}
}

func TestNodeGetAttrFirstMatch(t *testing.T) {
	n := elem("meta")
	n.SetAttr("rel", "x")
	n.SetAttr("rel", "y")
	if got, ok := n.GetAttr("rel"); !ok || got != "x" {
		t.Errorf("GetAttr(rel) = %q, %v, want first value", got, ok)
	}
	if _, ok := n.GetAttr("absent"); ok {
		t.Error("GetAttr(absent) should report missing")
	}
}
