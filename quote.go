package wikirt

import "strings"

// apostropheRun matches a run of one or more apostrophes inside a text
// chunk.
//
// Run lengths disambiguate greedily, longest interpretation first:
//
//	''      italic toggle
//	'''     bold toggle
//	''''    literal ' then bold toggle
//	'''''   italic+bold toggle
//	6+      leading literals, then italic+bold toggle
//
// A run at the end of a chunk may continue in the next chunk, so it is
// buffered across Process calls rather than converted eagerly.

// QuoteTransformer converts apostrophe runs into emphasis and strong tag
// pairs.
type QuoteTransformer struct {
	env *Env

	// open tracks currently open quote elements, innermost last.
	open []string
	// pending buffers an apostrophe run that reached the end of a chunk.
	pending int
}

// NewQuoteTransformer returns a reset QuoteTransformer.
func NewQuoteTransformer(env *Env) *QuoteTransformer {
	q := &QuoteTransformer{env: env}
	q.ResetState(ResetOptions{})
	return q
}

// ResetState clears open-element tracking and any buffered run.
func (q *QuoteTransformer) ResetState(ResetOptions) {
	q.open = nil
	q.pending = 0
}

// Process rewrites apostrophe runs in text chunks. Non-text tokens flush
// the buffered run; EOF additionally closes any open quote elements.
func (q *QuoteTransformer) Process(toks []Token, opts *TransformOptions) []Token {
	var out []Token
	for _, t := range toks {
		switch t.Type {
		case TextTk:
			out = q.processText(out, t.Text)
		case EOFTk:
			out = q.flushRun(out)
			out = q.closeAll(out)
			out = append(out, t)
		default:
			out = q.flushRun(out)
			out = append(out, t)
		}
	}
	return out
}

// processText scans one chunk, continuing any buffered run. A run that does
// not continue into this chunk must convert before the chunk's text so the
// output stays in source order.
func (q *QuoteTransformer) processText(out []Token, text string) []Token {
	if q.pending > 0 && !strings.HasPrefix(text, "'") {
		out = q.flushRun(out)
	}
	i := 0
	for i < len(text) {
		j := i
		for j < len(text) && text[j] == '\'' {
			j++
		}
		if j > i {
			run := j - i + q.pending
			q.pending = 0
			if j == len(text) {
				// Run may continue in the next chunk.
				q.pending = run
				return out
			}
			out = q.emitRun(out, run)
			i = j
			continue
		}
		k := strings.IndexByte(text[i:], '\'')
		if k < 0 {
			k = len(text) - i
		}
		out = appendText(out, text[i:i+k])
		i += k
	}
	return out
}

// flushRun converts the buffered run, if any.
func (q *QuoteTransformer) flushRun(out []Token) []Token {
	if q.pending > 0 {
		run := q.pending
		q.pending = 0
		out = q.emitRun(out, run)
	}
	return out
}

// emitRun converts one complete apostrophe run into tokens.
func (q *QuoteTransformer) emitRun(out []Token, n int) []Token {
	switch {
	case n == 1:
		return appendText(out, "'")
	case n == 2:
		return q.toggle(out, "i")
	case n == 3:
		return q.toggle(out, "b")
	case n == 4:
		out = appendText(out, "'")
		return q.toggle(out, "b")
	default: // 5 or more
		if n > 5 {
			out = appendText(out, strings.Repeat("'", n-5))
		}
		if q.isOpen("b") && q.isOpen("i") {
			out = q.toggle(out, "b")
			return q.toggle(out, "i")
		}
		out = q.toggle(out, "i")
		return q.toggle(out, "b")
	}
}

// toggle opens or closes one quote element. Closing an element that is not
// innermost closes the elements above it first and reopens them after, so
// the output nests properly.
func (q *QuoteTransformer) toggle(out []Token, name string) []Token {
	if !q.isOpen(name) {
		q.open = append(q.open, name)
		return append(out, NewTag(name))
	}

	var reopen []string
	for len(q.open) > 0 {
		top := q.open[len(q.open)-1]
		q.open = q.open[:len(q.open)-1]
		out = append(out, NewEndTag(top))
		if top == name {
			break
		}
		reopen = append(reopen, top)
	}
	for i := len(reopen) - 1; i >= 0; i-- {
		q.open = append(q.open, reopen[i])
		out = append(out, NewTag(reopen[i]))
	}
	return out
}

// isOpen reports whether name is currently open.
func (q *QuoteTransformer) isOpen(name string) bool {
	for _, n := range q.open {
		if n == name {
			return true
		}
	}
	return false
}

// closeAll closes open quote elements, innermost first.
func (q *QuoteTransformer) closeAll(out []Token) []Token {
	for i := len(q.open) - 1; i >= 0; i-- {
		out = append(out, NewEndTag(q.open[i]))
	}
	q.open = nil
	return out
}

// appendText appends a text token, merging into a preceding text token so
// runs of literals stay one chunk.
func appendText(out []Token, s string) []Token {
	if s == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Type == TextTk {
		out[n-1].Text += s
		return out
	}
	return append(out, NewText(s))
}
