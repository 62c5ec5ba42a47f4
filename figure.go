package wikirt

import "strings"

// figureHandler delegates media nodes entirely to the figure serialization
// routine; it never serializes them structurally.
type figureHandler struct{}

// Handle emits the figure's source form. Descendants are fully consumed
// here, so traversal resumes at the following sibling.
func (h *figureHandler) Handle(n *Node, st *SerializerState) (*Node, error) {
	st.Emit(serializeFigure(n))
	return nil, nil
}

// Before forces exactly one newline ahead of a freshly inserted top-level
// figure; everything else is unconstrained.
func (h *figureHandler) Before(n, other *Node, st *SerializerState) Constraint {
	if n.NewlyInserted() && n.InBody() {
		return Exactly(1)
	}
	return NoConstraint()
}

// After mirrors Before on the trailing side.
func (h *figureHandler) After(n, other *Node, st *SerializerState) Constraint {
	if n.NewlyInserted() && n.InBody() {
		return Exactly(1)
	}
	return NoConstraint()
}

// serializeFigure renders a media node as a file inclusion. Recorded source
// wins; otherwise the link is rebuilt from the resource reference and the
// caption.
func serializeFigure(n *Node) string {
	if n.DP.Src != "" {
		return n.DP.Src
	}

	resource := figureResource(n)
	if resource == "" {
		return ""
	}

	parts := []string{resource}
	if caption := figureCaption(n); caption != "" {
		parts = append(parts, caption)
	}
	return "[[" + strings.Join(parts, "|") + "]]"
}

// figureResource finds the media reference: the figure's own resource
// attribute, or its first descendant's.
func figureResource(n *Node) string {
	if r, ok := n.GetAttr("resource"); ok {
		return strings.TrimPrefix(r, "./")
	}
	for _, c := range n.Children {
		if r := figureResource(c); r != "" {
			return r
		}
	}
	return ""
}

// figureCaption returns the text of a figcaption child, when present.
func figureCaption(n *Node) string {
	for _, c := range n.Children {
		if c.IsElement("figcaption") {
			return c.TextContent()
		}
	}
	return ""
}
