package wikirt

// Include directive tag names.
const (
	tagIncludeOnly = "includeonly"
	tagNoInclude   = "noinclude"
	tagOnlyInclude = "onlyinclude"
)

// IncludeHandler filters the stream through the includeonly / noinclude /
// onlyinclude directives, keyed on the IsInclude mode flag.
//
// In include mode (content being transcluded into another page):
// noinclude regions are dropped, includeonly tags are stripped but their
// content kept, and once any onlyinclude section appears only onlyinclude
// content survives.
//
// In top-level mode: includeonly regions are dropped, noinclude and
// onlyinclude tags are stripped with content kept.
type IncludeHandler struct {
	env *Env

	// skipDepth counts open directive regions whose content is dropped.
	skipDepth int
	// inOnlyInclude tracks an open onlyinclude section across calls.
	inOnlyInclude bool
	// sawOnlyInclude sticks once any onlyinclude open tag has been seen;
	// in include mode it flips filtering to onlyinclude-sections-only.
	sawOnlyInclude bool
}

// NewIncludeHandler returns a reset IncludeHandler.
func NewIncludeHandler(env *Env) *IncludeHandler {
	h := &IncludeHandler{env: env}
	h.ResetState(ResetOptions{})
	return h
}

// ResetState clears region tracking.
func (h *IncludeHandler) ResetState(ResetOptions) {
	h.skipDepth = 0
	h.inOnlyInclude = false
	h.sawOnlyInclude = false
}

// Process filters one batch. EOF always passes through, even from inside an
// unterminated directive region.
func (h *IncludeHandler) Process(toks []Token, opts *TransformOptions) []Token {
	isInclude := opts != nil && opts.IsInclude

	// In include mode an onlyinclude section anywhere in the batch takes
	// effect for the whole batch.
	if isInclude && !h.sawOnlyInclude {
		for _, t := range toks {
			if t.Type == TagTk && t.Name == tagOnlyInclude {
				h.sawOnlyInclude = true
				break
			}
		}
	}

	var out []Token
	for _, t := range toks {
		if t.Type == EOFTk {
			out = append(out, t)
			continue
		}
		if isDirectiveTag(t) {
			h.handleDirective(t, isInclude)
			continue
		}
		if h.skipDepth > 0 {
			continue
		}
		if isInclude && h.sawOnlyInclude && !h.inOnlyInclude {
			continue
		}
		out = append(out, t)
	}
	return out
}

// handleDirective updates region state for one directive tag. The tags
// themselves never reach the output.
func (h *IncludeHandler) handleDirective(t Token, isInclude bool) {
	opening := t.Type == TagTk

	switch t.Name {
	case tagOnlyInclude:
		h.inOnlyInclude = opening
	case tagNoInclude:
		if isInclude {
			h.adjustSkip(opening)
		}
	case tagIncludeOnly:
		if !isInclude {
			h.adjustSkip(opening)
		}
	}
}

// adjustSkip opens or closes one dropped region.
func (h *IncludeHandler) adjustSkip(opening bool) {
	if opening {
		h.skipDepth++
	} else if h.skipDepth > 0 {
		h.skipDepth--
	}
}

// isDirectiveTag reports whether t is an include-directive open or close
// tag.
func isDirectiveTag(t Token) bool {
	if t.Type != TagTk && t.Type != EndTagTk {
		return false
	}
	switch t.Name {
	case tagIncludeOnly, tagNoInclude, tagOnlyInclude:
		return true
	}
	return false
}
