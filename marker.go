package wikirt

import (
	"regexp"
	"strings"
)

// MarkerCategory classifies a marker node's round-trip behavior. Dispatch
// is a closed enumeration with a required default arm (MarkerUnknown falls
// through to the generic handler) rather than scattered string matches.
type MarkerCategory int

// Marker categories.
const (
	MarkerUnknown MarkerCategory = iota
	MarkerPlaceholder
	MarkerIncludeOnlyStart
	MarkerIncludeOnlyEnd
	MarkerNoIncludeStart
	MarkerNoIncludeEnd
	MarkerOnlyIncludeStart
	MarkerOnlyIncludeEnd
	MarkerDiff
)

// markerRule binds one typeof pattern to its category.
type markerRule struct {
	re  *regexp.Regexp
	cat MarkerCategory
}

// markerRules is the declarative dispatch table, compiled once. First match
// wins; anything unmatched stays MarkerUnknown.
var markerRules = []markerRule{
	{regexp.MustCompile(`(?:^|\s)mw:Placeholder(?:/|\s|$)`), MarkerPlaceholder},
	{regexp.MustCompile(`(?:^|\s)mw:Includes/IncludeOnly/End(?:\s|$)`), MarkerIncludeOnlyEnd},
	{regexp.MustCompile(`(?:^|\s)mw:Includes/IncludeOnly(?:\s|$)`), MarkerIncludeOnlyStart},
	{regexp.MustCompile(`(?:^|\s)mw:Includes/NoInclude/End(?:\s|$)`), MarkerNoIncludeEnd},
	{regexp.MustCompile(`(?:^|\s)mw:Includes/NoInclude(?:\s|$)`), MarkerNoIncludeStart},
	{regexp.MustCompile(`(?:^|\s)mw:Includes/OnlyInclude/End(?:\s|$)`), MarkerOnlyIncludeEnd},
	{regexp.MustCompile(`(?:^|\s)mw:Includes/OnlyInclude(?:\s|$)`), MarkerOnlyIncludeStart},
	{regexp.MustCompile(`(?:^|\s)mw:DiffMarker(?:/|\s|$)`), MarkerDiff},
}

// markerFallbacks holds the literal source emitted for a boundary marker
// with no recorded source, per directive and side.
var markerFallbacks = map[MarkerCategory]string{
	MarkerIncludeOnlyStart: "<includeonly>",
	MarkerIncludeOnlyEnd:   "</includeonly>",
	MarkerNoIncludeStart:   "<noinclude>",
	MarkerNoIncludeEnd:     "</noinclude>",
	MarkerOnlyIncludeStart: "<onlyinclude>",
	MarkerOnlyIncludeEnd:   "</onlyinclude>",
}

// ClassifyMarker returns the category of a typeof attribute value.
func ClassifyMarker(typeOf string) MarkerCategory {
	for _, r := range markerRules {
		if r.re.MatchString(typeOf) {
			return r.cat
		}
	}
	return MarkerUnknown
}

// metaHandler serializes marker nodes: page properties first, then typed
// markers, with the generic handler as the default arm.
//
// The property-first ordering is a correctness requirement, not a
// convenience: a page property whose value came from an unexpanded template
// placeholder round-trips only because the property path prefers literal
// recorded source over re-derivation.
type metaHandler struct {
	env     *Env
	generic *genericHandler
}

// Handle dispatches one marker node.
func (h *metaHandler) Handle(n *Node, st *SerializerState) (*Node, error) {
	if property, ok := n.GetAttr("property"); ok {
		if name, category, ok := h.env.MatchPageProp(property); ok {
			value, _ := n.GetAttr("content")
			if category {
				st.Emit(h.categoryProp(name, value, n.DP.Src))
			} else {
				st.Emit(h.genericProp(name))
			}
			return nil, nil
		}
	}

	typeOf, _ := n.GetAttr("typeof")
	switch cat := ClassifyMarker(typeOf); cat {
	case MarkerPlaceholder:
		// Literal recorded source, nothing when absent.
		st.Emit(n.DP.Src)
		return nil, nil
	case MarkerIncludeOnlyStart, MarkerIncludeOnlyEnd,
		MarkerNoIncludeStart, MarkerNoIncludeEnd,
		MarkerOnlyIncludeStart, MarkerOnlyIncludeEnd:
		if n.DP.Src != "" {
			st.Emit(n.DP.Src)
		} else {
			st.Emit(markerFallbacks[cat])
		}
		return nil, nil
	case MarkerDiff:
		// Structural markers have no source form.
		return nil, nil
	default:
		return h.generic.Handle(n, st)
	}
}

// categoryProp renders a category-like page property. Preference order:
// a recorded source prefix with the freshly re-serialized value and the
// closing tail reattached, then literal recorded source with the value
// substituted, then the canonical-uppercase magic-word fallback.
func (h *metaHandler) categoryProp(name, value, src string) string {
	if src != "" {
		if strings.HasSuffix(src, ":") {
			return src + value + "}}"
		}
		if i := strings.Index(src, ":"); i >= 0 {
			return src[:i+1] + value + "}}"
		}
		return src
	}
	return "{{" + strings.ToUpper(name) + ":" + value + "}}"
}

// genericProp renders a plain page property through the site magic-word
// formatter.
func (h *metaHandler) genericProp(name string) string {
	wt, ok := h.env.MagicWordWT(name)
	if !ok {
		h.env.logf("no wikitext form for page property", "property", name)
		return ""
	}
	return wt
}

// Before returns no constraint; marker nodes sit flush with their
// neighbors unless a neighbor requires otherwise.
func (h *metaHandler) Before(n, other *Node, st *SerializerState) Constraint {
	return NoConstraint()
}

// After mirrors Before.
func (h *metaHandler) After(n, other *Node, st *SerializerState) Constraint {
	return NoConstraint()
}
