package wikirt

// blockTags suppress paragraph wrapping while open. Content inside lists,
// tables, pre blocks, and other block containers is never p-wrapped.
var blockTags = map[string]bool{
	"blockquote": true, "div": true, "dl": true, "dd": true, "dt": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ol": true, "pre": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// ParagraphWrapper inserts and removes paragraph boundary tags based on
// blank-line and block-element adjacency.
type ParagraphWrapper struct {
	env *Env

	// pOpen tracks the currently open paragraph.
	pOpen bool
	// blockDepth counts open block containers; wrapping is suppressed
	// while positive.
	blockDepth int
	// pendingNLs holds newline tokens not yet re-emitted. Two or more in a
	// row form a blank line, which is a paragraph boundary.
	pendingNLs int
}

// NewParagraphWrapper returns a reset ParagraphWrapper.
func NewParagraphWrapper(env *Env) *ParagraphWrapper {
	p := &ParagraphWrapper{env: env}
	p.ResetState(ResetOptions{})
	return p
}

// ResetState closes any notion of an open paragraph and clears held
// newlines.
func (p *ParagraphWrapper) ResetState(ResetOptions) {
	p.pOpen = false
	p.blockDepth = 0
	p.pendingNLs = 0
}

// Process wraps inline runs in paragraph tags. Newline tokens are held
// until the following token decides whether they separate paragraphs.
func (p *ParagraphWrapper) Process(toks []Token, opts *TransformOptions) []Token {
	var out []Token
	for _, t := range toks {
		switch {
		case t.Type == NewlineTk:
			p.pendingNLs++

		case t.Type == EOFTk:
			out = p.closeParagraph(out)
			out = p.flushNewlines(out)
			out = append(out, t)

		case t.IsTag() && blockTags[t.Name]:
			out = p.closeParagraph(out)
			out = p.flushNewlines(out)
			switch t.Type {
			case TagTk:
				p.blockDepth++
			case EndTagTk:
				if p.blockDepth > 0 {
					p.blockDepth--
				}
			}
			out = append(out, t)

		default:
			// Inline content: a blank line ends the current paragraph, a
			// single newline keeps it open.
			if p.pendingNLs >= 2 {
				out = p.closeParagraph(out)
			}
			out = p.flushNewlines(out)
			if p.blockDepth == 0 && !p.pOpen {
				out = append(out, NewTag("p"))
				p.pOpen = true
			}
			out = append(out, t)
		}
	}
	return out
}

// closeParagraph emits the close tag for an open paragraph.
func (p *ParagraphWrapper) closeParagraph(out []Token) []Token {
	if p.pOpen {
		out = append(out, NewEndTag("p"))
		p.pOpen = false
	}
	return out
}

// flushNewlines re-emits held newline tokens.
func (p *ParagraphWrapper) flushNewlines(out []Token) []Token {
	for ; p.pendingNLs > 0; p.pendingNLs-- {
		out = append(out, NewNewline())
	}
	return out
}
