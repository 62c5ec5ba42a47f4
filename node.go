package wikirt

// NodeType identifies a document-tree node kind.
type NodeType int

// Node kinds.
const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
)

// Span is a half-open byte range into the original source.
type Span struct {
	Start int
	End   int
}

// DataParsoid is the round-trip sidecar of a document node: where the node
// came from in the original source and how it was written there. A node
// with no source span was inserted by an edit rather than parsed.
type DataParsoid struct {
	// Src is the recorded source fragment for the node, when the parse
	// captured one. Serialization prefers it over re-derivation.
	Src string
	// DSR is the node's source range; nil marks a newly inserted node.
	DSR *Span
	// Stx records the syntax style the source used (e.g. html vs wiki).
	Stx string
	// AutoInserted marks tags the parser added that have no source form.
	AutoInserted bool
}

// Node is the minimal HTML-like tree shape the serializer traverses. Tree
// construction itself belongs to the DOM collaborator; this type only
// carries what re-emitting source text needs.
type Node struct {
	Type     NodeType
	Name     string // element name, lowercase
	Text     string // payload for text and comment nodes
	Attrs    []Attr // ordered, duplicate keys legal
	Children []*Node
	Parent   *Node
	DP       DataParsoid
	DMW      string
}

// NewDocument returns a document node with an empty body element, the
// top-level content container.
func NewDocument() *Node {
	doc := &Node{Type: DocumentNode}
	body := &Node{Type: ElementNode, Name: "body"}
	doc.AppendChild(body)
	return doc
}

// Body returns the document's top-level content container, or nil.
func (n *Node) Body() *Node {
	if n.Type != DocumentNode {
		return nil
	}
	for _, c := range n.Children {
		if c.Type == ElementNode && c.Name == "body" {
			return c
		}
	}
	return nil
}

// AppendChild attaches c as the last child of n and returns c.
func (n *Node) AppendChild(c *Node) *Node {
	c.Parent = n
	n.Children = append(n.Children, c)
	return c
}

// GetAttr returns the value of the first attribute named key and whether it
// was present.
func (n *Node) GetAttr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr appends an attribute.
func (n *Node) SetAttr(key, value string) {
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
}

// IsElement reports whether n is an element named name.
func (n *Node) IsElement(name string) bool {
	return n.Type == ElementNode && n.Name == name
}

// InBody reports whether n is a direct child of the top-level content
// container.
func (n *Node) InBody() bool {
	return n.Parent != nil && n.Parent.IsElement("body") &&
		n.Parent.Parent != nil && n.Parent.Parent.Type == DocumentNode
}

// NewlyInserted reports whether the node has no presence in the original
// source: no recorded span and no recorded fragment.
func (n *Node) NewlyInserted() bool {
	return n.DP.DSR == nil && n.DP.Src == ""
}

// NextSibling returns the sibling after n, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	sibs := n.Parent.Children
	for i, s := range sibs {
		if s == n && i+1 < len(sibs) {
			return sibs[i+1]
		}
	}
	return nil
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	out := ""
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}
