package wikirt

import "strings"

// PreHandler recognizes leading-space preformatted lines and wraps them in
// pre tags. Inside transclusion content the indent-pre syntax is inert, so
// the stage passes tokens through unchanged there.
type PreHandler struct {
	env *Env

	// preOpen tracks an open preformatted block.
	preOpen bool
	// atSOL marks that the next text token starts a source line.
	atSOL bool
	// heldNLs counts newlines preceding a potential pre continuation line,
	// deferred until the line's fate is known. Every held newline is
	// re-emitted, inside or outside the block.
	heldNLs int
}

// NewPreHandler returns a reset PreHandler.
func NewPreHandler(env *Env) *PreHandler {
	p := &PreHandler{env: env}
	p.ResetState(ResetOptions{})
	return p
}

// ResetState closes any open block and rewinds to start-of-line.
func (p *PreHandler) ResetState(ResetOptions) {
	p.preOpen = false
	p.atSOL = true
	p.heldNLs = 0
}

// Process wraps runs of space-indented lines in a single pre element,
// joining them with literal newline text. The leading space of each line is
// consumed by the wrapper.
func (p *PreHandler) Process(toks []Token, opts *TransformOptions) []Token {
	if opts != nil && opts.InTransclusion {
		return toks
	}

	var out []Token
	for _, t := range toks {
		switch t.Type {
		case NewlineTk:
			if p.preOpen {
				// The block survives only if the next line is indented.
				p.heldNLs++
			} else {
				out = append(out, t)
			}
			p.atSOL = true

		case TextTk:
			if p.atSOL && strings.HasPrefix(t.Text, " ") {
				if !p.preOpen {
					out = append(out, NewTag("pre"))
					p.preOpen = true
				} else if p.heldNLs > 0 {
					out = appendText(out, strings.Repeat("\n", p.heldNLs))
					p.heldNLs = 0
				}
				out = appendText(out, t.Text[1:])
			} else {
				out = p.closePre(out)
				out = append(out, t)
			}
			p.atSOL = false

		case EOFTk:
			out = p.closePre(out)
			out = append(out, t)

		default:
			out = p.closePre(out)
			out = append(out, t)
			p.atSOL = false
		}
	}
	return out
}

// closePre ends an open block and releases every held newline.
func (p *PreHandler) closePre(out []Token) []Token {
	if p.preOpen {
		out = append(out, NewEndTag("pre"))
		p.preOpen = false
	}
	for ; p.heldNLs > 0; p.heldNLs-- {
		out = append(out, NewNewline())
	}
	return out
}
