package wikirt

// BehaviorSwitchHandler converts magic-word behavior switches such as
// __NOTOC__ into page-property marker tokens. It carries no state across
// calls.
type BehaviorSwitchHandler struct {
	env *Env
}

// NewBehaviorSwitchHandler returns a BehaviorSwitchHandler.
func NewBehaviorSwitchHandler(env *Env) *BehaviorSwitchHandler {
	return &BehaviorSwitchHandler{env: env}
}

// ResetState is a no-op; the stage is stateless.
func (b *BehaviorSwitchHandler) ResetState(ResetOptions) {}

// Process replaces each recognized switch inside text chunks with a meta
// marker token. The marker records the matched source form in its dp
// sidecar so serialization can reproduce it exactly.
func (b *BehaviorSwitchHandler) Process(toks []Token, opts *TransformOptions) []Token {
	re := b.env.BehaviorSwitchPattern()
	if re == nil {
		return toks
	}

	var out []Token
	for _, t := range toks {
		if t.Type != TextTk {
			out = append(out, t)
			continue
		}
		text := t.Text
		locs := re.FindAllStringIndex(text, -1)
		if locs == nil {
			out = append(out, t)
			continue
		}
		prev := 0
		for _, loc := range locs {
			if loc[0] > prev {
				out = appendText(out, text[prev:loc[0]])
			}
			src := text[loc[0]:loc[1]]
			name, _ := b.env.MatchBehaviorSwitch(src)
			marker := NewSelfClosingTag("meta", Attr{Key: "property", Value: "mw:PageProp/" + name})
			marker.DP = "{src:" + src + "}"
			out = append(out, marker)
			prev = loc[1]
		}
		if prev < len(text) {
			out = appendText(out, text[prev:])
		}
	}
	return out
}
