package wikirt

// TokenType identifies the lexical category of a Token.
type TokenType int

// Token types produced by the tokenizer and rewritten by transformers.
const (
	TagTk            TokenType = iota // open tag
	EndTagTk                          // close tag
	SelfClosingTagTk                  // self-closing tag
	NewlineTk                         // line break in the source
	EOFTk                             // end of input, exactly one per document
	CommentTk                         // HTML comment
	TextTk                            // literal text chunk
)

// String returns the canonical name of the token type.
func (t TokenType) String() string {
	switch t {
	case TagTk:
		return "tag"
	case EndTagTk:
		return "endtag"
	case SelfClosingTagTk:
		return "selfclose"
	case NewlineTk:
		return "nl"
	case EOFTk:
		return "eof"
	case CommentTk:
		return "comment"
	case TextTk:
		return "text"
	}
	return "unknown"
}

// Attr is one attribute of a tag token. Keys may repeat; the slice order is
// the source order and is significant for round-tripping.
type Attr struct {
	Key   string
	Value string
}

// Token is the atomic unit of the intermediate representation between source
// text and the document tree.
//
// DP carries parse-time round-trip metadata (original source span, syntax
// style) and DMW carries extension metadata. Both are opaque blobs in the
// transcript's compact form: transformers pass them through unmodified
// unless their contract says otherwise.
type Token struct {
	Type  TokenType
	Name  string // tag name, set for tag tokens only
	Text  string // payload for TextTk and CommentTk
	Attrs []Attr
	DP    string
	DMW   string
}

// NewText returns a text chunk token.
func NewText(s string) Token { return Token{Type: TextTk, Text: s} }

// NewTag returns an open tag token with optional attributes.
func NewTag(name string, attrs ...Attr) Token {
	return Token{Type: TagTk, Name: name, Attrs: attrs}
}

// NewEndTag returns a close tag token.
func NewEndTag(name string) Token { return Token{Type: EndTagTk, Name: name} }

// NewSelfClosingTag returns a self-closing tag token with optional attributes.
func NewSelfClosingTag(name string, attrs ...Attr) Token {
	return Token{Type: SelfClosingTagTk, Name: name, Attrs: attrs}
}

// NewNewline returns a newline token.
func NewNewline() Token { return Token{Type: NewlineTk} }

// NewEOF returns an end-of-input token.
func NewEOF() Token { return Token{Type: EOFTk} }

// GetAttr returns the value of the first attribute named key and whether it
// was present.
func (t Token) GetAttr(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr appends an attribute, preserving any existing ones with the same
// key. Use ReplaceAttr to overwrite.
func (t *Token) SetAttr(key, value string) {
	t.Attrs = append(t.Attrs, Attr{Key: key, Value: value})
}

// ReplaceAttr overwrites the first attribute named key, or appends it.
func (t *Token) ReplaceAttr(key, value string) {
	for i, a := range t.Attrs {
		if a.Key == key {
			t.Attrs[i].Value = value
			return
		}
	}
	t.SetAttr(key, value)
}

// Clone returns a deep copy of the token, including its sidecars.
func (t Token) Clone() Token {
	c := t
	if t.Attrs != nil {
		c.Attrs = make([]Attr, len(t.Attrs))
		copy(c.Attrs, t.Attrs)
	}
	return c
}

// IsTag reports whether the token is an open, close, or self-closing tag.
func (t Token) IsTag() bool {
	return t.Type == TagTk || t.Type == EndTagTk || t.Type == SelfClosingTagTk
}
