package wikirt

import "testing"

func textNode(s string) *Node {
	return &Node{Type: TextNode, Text: s}
}

func elem(name string, kids ...*Node) *Node {
	n := &Node{Type: ElementNode, Name: name}
	for _, k := range kids {
		n.AppendChild(k)
	}
	return n
}

// docWith builds a document whose body holds the given children.
func docWith(kids ...*Node) *Node {
	doc := NewDocument()
	body := doc.Body()
	for _, k := range kids {
		body.AppendChild(k)
	}
	return doc
}

func serialize(t *testing.T, doc *Node) string {
	t.Helper()
	out, err := NewSerializer(testEnv(t)).Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	return out
}

func TestSerializeParagraphSeparation(t *testing.T) {
	doc := docWith(
		elem("p", textNode("a")),
		elem("p", textNode("b")),
	)
	if got, want := serialize(t, doc), "a\n\nb"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeHeadingThenParagraph(t *testing.T) {
	doc := docWith(
		elem("h2", textNode("Title")),
		elem("p", textNode("body")),
	)
	// The paragraph's two-newline requirement dominates the heading's
	// one-newline minimum.
	if got, want := serialize(t, doc), "== Title ==\n\nbody"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeRecordedSourceWins(t *testing.T) {
	p := elem("p", textNode("rederived"))
	p.DP.Src = "original source"
	doc := docWith(p)
	if got, want := serialize(t, doc), "original source"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeInlineEmphasis(t *testing.T) {
	doc := docWith(elem("p",
		textNode("a "),
		elem("i", textNode("b")),
		textNode(" c"),
	))
	if got, want := serialize(t, doc), "a ''b'' c"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeHTMLSyntaxSkipsWrappers(t *testing.T) {
	b := elem("b", textNode("x"))
	b.DP.Stx = "html"
	doc := docWith(b)
	if got, want := serialize(t, doc), "x"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeComment(t *testing.T) {
	doc := docWith(&Node{Type: CommentNode, Text: " note "})
	if got, want := serialize(t, doc), "<!-- note -->"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

// An unconstrained boundary between two block elements defaults to one
// newline; inline neighbors sit flush.
func TestSerializeDefaultSeparators(t *testing.T) {
	blocks := docWith(
		elem("div", textNode("a")),
		elem("div", textNode("b")),
	)
	if got, want := serialize(t, blocks), "a\nb"; got != want {
		t.Errorf("blocks = %q, want %q", got, want)
	}

	inline := docWith(textNode("a"), textNode("b"))
	if got, want := serialize(t, inline), "ab"; got != want {
		t.Errorf("inline = %q, want %q", got, want)
	}
}

func TestSerializeEmptyBody(t *testing.T) {
	if got := serialize(t, NewDocument()); got != "" {
		t.Errorf("Serialize() = %q, want empty", got)
	}
}

func TestSerializeNoBody(t *testing.T) {
	_, err := NewSerializer(testEnv(t)).Serialize(&Node{Type: DocumentNode})
	if err == nil {
		t.Fatal("Serialize() expected error for document without body")
	}
}
