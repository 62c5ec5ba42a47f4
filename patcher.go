package wikirt

import "strings"

// TokenStreamPatcher performs late-stage fixups on transclusion content:
// adjacent text chunks are merged, close tags with no matching open are
// dropped, and a start-of-line leading space is escaped so downstream
// stages cannot mistake it for indent-pre syntax.
//
// The patcher must be reset with TopLevel before its first use; a pipeline
// that skips the reset gets a diagnostic and unpatched passthrough.
type TokenStreamPatcher struct {
	env *Env

	// initialized is set by a top-level reset.
	initialized bool
	// warned suppresses repeated missing-reset diagnostics.
	warned bool
	// openTags tracks open tag names across calls for matching close tags.
	openTags []string
	// atSOL marks the start of a source line.
	atSOL bool
}

// NewTokenStreamPatcher returns a TokenStreamPatcher that still requires a
// top-level reset.
func NewTokenStreamPatcher(env *Env) *TokenStreamPatcher {
	return &TokenStreamPatcher{env: env}
}

// ResetState clears tag tracking. A TopLevel reset also arms the patcher
// for use.
func (p *TokenStreamPatcher) ResetState(opts ResetOptions) {
	if opts.TopLevel {
		p.initialized = true
	}
	p.openTags = nil
	p.atSOL = true
}

// Process patches one batch. Outside transclusion context the stream is
// returned unchanged.
func (p *TokenStreamPatcher) Process(toks []Token, opts *TransformOptions) []Token {
	if !p.initialized {
		if !p.warned {
			p.env.logf("token stream patcher used before top-level reset")
			p.warned = true
		}
		return toks
	}
	if opts == nil || !opts.InTransclusion {
		return toks
	}

	var out []Token
	for _, t := range toks {
		switch t.Type {
		case TextTk:
			text := t.Text
			if p.atSOL && strings.HasPrefix(text, " ") {
				// Indent-pre is inert in transclusions; make that visible.
				text = "&#32;" + text[1:]
			}
			out = appendText(out, text)
			p.atSOL = false

		case NewlineTk:
			out = append(out, t)
			p.atSOL = true

		case TagTk:
			p.openTags = append(p.openTags, t.Name)
			out = append(out, t)
			p.atSOL = false

		case EndTagTk:
			if !p.popTag(t.Name) {
				p.env.logf("dropped unmatched close tag", "tag", t.Name)
				continue
			}
			out = append(out, t)
			p.atSOL = false

		default:
			out = append(out, t)
			if t.Type != EOFTk {
				p.atSOL = false
			}
		}
	}
	return out
}

// popTag removes the innermost open tag matching name, reporting whether
// one existed.
func (p *TokenStreamPatcher) popTag(name string) bool {
	for i := len(p.openTags) - 1; i >= 0; i-- {
		if p.openTags[i] == name {
			p.openTags = append(p.openTags[:i], p.openTags[i+1:]...)
			return true
		}
	}
	return false
}
