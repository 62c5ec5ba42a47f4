package wikirt

import "strings"

// DOMHandler serializes one kind of document node back into source text.
//
// Handle emits zero or more text chunks and may return a node to resume
// traversal from, signalling that descendants (or following siblings) up to
// that node were already consumed. Before and After return the separator
// constraint required on each side of the node.
type DOMHandler interface {
	Handle(n *Node, st *SerializerState) (resumeAt *Node, err error)
	Before(n, other *Node, st *SerializerState) Constraint
	After(n, other *Node, st *SerializerState) Constraint
}

// SerializerState accumulates output chunks during one serialization walk.
type SerializerState struct {
	env *Env
	sb  strings.Builder
}

// NewSerializerState returns an empty state bound to env.
func NewSerializerState(env *Env) *SerializerState {
	return &SerializerState{env: env}
}

// Emit appends one text chunk to the output.
func (st *SerializerState) Emit(chunk string) {
	st.sb.WriteString(chunk)
}

// Output returns everything emitted so far.
func (st *SerializerState) Output() string { return st.sb.String() }

// Serializer walks a document tree and re-emits source text, deciding
// inter-node whitespace through the separator constraint protocol.
type Serializer struct {
	env     *Env
	meta    *metaHandler
	figure  *figureHandler
	generic *genericHandler
}

// NewSerializer returns a Serializer bound to env.
func NewSerializer(env *Env) *Serializer {
	s := &Serializer{env: env}
	s.generic = &genericHandler{ser: s}
	s.meta = &metaHandler{env: env, generic: s.generic}
	s.figure = &figureHandler{}
	return s
}

// Serialize re-emits the source text of a document.
func (s *Serializer) Serialize(doc *Node) (string, error) {
	body := doc.Body()
	if body == nil {
		return "", ErrNoSource
	}
	st := NewSerializerState(s.env)
	if err := s.serializeChildren(body, st); err != nil {
		return "", err
	}
	return st.Output(), nil
}

// serializeChildren walks the children of parent, inserting the separator
// each adjacent pair requires.
func (s *Serializer) serializeChildren(parent *Node, st *SerializerState) error {
	var prev *Node
	i := 0
	for i < len(parent.Children) {
		n := parent.Children[i]
		if prev != nil {
			s.emitSeparator(prev, n, st)
		}
		resume, err := s.handlerFor(n).Handle(n, st)
		if err != nil {
			return err
		}
		prev = n
		if resume != nil {
			// Descendants up to resume were consumed; continue there.
			i = indexOfChild(parent, resume)
			if i < 0 {
				break
			}
			continue
		}
		i++
	}
	return nil
}

// emitSeparator resolves and emits the separator between two adjacent
// nodes. An unconstrained boundary falls back to contextual default
// spacing: one newline between two block-level elements, nothing
// otherwise.
func (s *Serializer) emitSeparator(left, right *Node, st *SerializerState) {
	after := s.handlerFor(left).After(left, right, st)
	before := s.handlerFor(right).Before(right, left, st)
	count, forced := CombineConstraints(after, before)
	if !forced {
		if isBlockNode(left) && isBlockNode(right) {
			st.Emit("\n")
		}
		return
	}
	st.Emit(strings.Repeat("\n", count))
}

// handlerFor picks the handler for a node. Marker-capable meta elements
// dispatch through the marker table; figures always delegate to the figure
// routine; everything else serializes by structural role.
func (s *Serializer) handlerFor(n *Node) DOMHandler {
	switch {
	case n.IsElement("meta"):
		return s.meta
	case n.IsElement("figure"):
		return s.figure
	default:
		return s.generic
	}
}

// indexOfChild locates a node among parent's children, -1 when absent.
func indexOfChild(parent *Node, n *Node) int {
	for i, c := range parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// isBlockNode reports whether the node serializes as a block.
func isBlockNode(n *Node) bool {
	return n.Type == ElementNode && blockTags[n.Name]
}

// genericHandler serializes a node by its structural role. It is the
// required default arm of marker dispatch: anything unclassifiable lands
// here instead of failing.
type genericHandler struct {
	ser *Serializer
}

// wikiWrappers maps elements with a native wikitext form to their
// delimiters.
var wikiWrappers = map[string][2]string{
	"b":  {"'''", "'''"},
	"i":  {"''", "''"},
	"h1": {"= ", " ="},
	"h2": {"== ", " =="},
	"h3": {"=== ", " ==="},
	"h4": {"==== ", " ===="},
	"h5": {"===== ", " ====="},
	"h6": {"====== ", " ======"},
}

// Handle re-emits recorded source when present, else re-derives the node
// from its structure.
func (g *genericHandler) Handle(n *Node, st *SerializerState) (*Node, error) {
	if n.DP.Src != "" {
		st.Emit(n.DP.Src)
		return nil, nil
	}

	switch n.Type {
	case TextNode:
		st.Emit(n.Text)
	case CommentNode:
		st.Emit("<!--" + n.Text + "-->")
	case ElementNode:
		wrap, ok := wikiWrappers[n.Name]
		if ok && n.DP.Stx != "html" {
			st.Emit(wrap[0])
		}
		if err := g.ser.serializeChildren(n, st); err != nil {
			return nil, err
		}
		if ok && n.DP.Stx != "html" {
			st.Emit(wrap[1])
		}
	}
	return nil, nil
}

// Before returns the structural constraint preceding n.
func (g *genericHandler) Before(n, other *Node, st *SerializerState) Constraint {
	return blockConstraint(n)
}

// After returns the structural constraint following n.
func (g *genericHandler) After(n, other *Node, st *SerializerState) Constraint {
	return blockConstraint(n)
}

// blockConstraint gives paragraphs a blank-line separation and headings a
// line of their own; inline content is unconstrained.
func blockConstraint(n *Node) Constraint {
	if n.Type != ElementNode {
		return NoConstraint()
	}
	switch n.Name {
	case "p":
		return Between(2, 2)
	case "h1", "h2", "h3", "h4", "h5", "h6", "table", "ul", "ol", "dl", "pre", "blockquote":
		return AtLeast(1)
	}
	return NoConstraint()
}
