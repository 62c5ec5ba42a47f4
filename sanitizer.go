package wikirt

import "strings"

// Sanitizer validates tags and attributes against the site allow-lists.
// Disallowed tags degrade to literal text so no content is lost; disallowed
// attributes are dropped. Transclusion content is filtered more strictly:
// tags on the transclusion deny-list disappear entirely.
type Sanitizer struct {
	env *Env
}

// NewSanitizer returns a Sanitizer.
func NewSanitizer(env *Env) *Sanitizer {
	return &Sanitizer{env: env}
}

// ResetState is a no-op; filtering depends only on the batch and options.
func (s *Sanitizer) ResetState(ResetOptions) {}

// Process filters one batch.
func (s *Sanitizer) Process(toks []Token, opts *TransformOptions) []Token {
	inTx := opts != nil && opts.InTransclusion

	var out []Token
	for _, t := range toks {
		if !t.IsTag() {
			out = append(out, t)
			continue
		}
		name := strings.ToLower(t.Name)
		if inTx && s.env.IsDeniedInTransclusion(name) {
			s.env.logf("sanitizer dropped transclusion-denied tag", "tag", name)
			continue
		}
		if !s.env.IsAllowedTag(name) {
			out = appendText(out, literalTagText(t))
			continue
		}
		out = append(out, s.filterAttrs(t))
	}
	return out
}

// filterAttrs drops disallowed attribute keys and unsafe href values.
func (s *Sanitizer) filterAttrs(t Token) Token {
	if len(t.Attrs) == 0 {
		return t
	}
	kept := t.Attrs[:0:0]
	for _, a := range t.Attrs {
		if !s.env.IsAllowedAttr(a.Key) {
			s.env.logf("sanitizer dropped attribute", "tag", t.Name, "attr", a.Key)
			continue
		}
		if strings.EqualFold(a.Key, "href") && unsafeHref(a.Value) {
			s.env.logf("sanitizer dropped unsafe href", "tag", t.Name)
			continue
		}
		kept = append(kept, a)
	}
	t.Attrs = kept
	return t
}

// unsafeHref reports whether an href value carries an executable scheme.
func unsafeHref(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "vbscript:")
}

// literalTagText renders a disallowed tag token as the text a reader would
// have typed.
func literalTagText(t Token) string {
	var b strings.Builder
	b.WriteByte('<')
	if t.Type == EndTagTk {
		b.WriteByte('/')
	}
	b.WriteString(t.Name)
	for _, a := range t.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
	if t.Type == SelfClosingTagTk {
		b.WriteByte('/')
	}
	b.WriteByte('>')
	return b.String()
}
