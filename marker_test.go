package wikirt

import "testing"

func TestClassifyMarker(t *testing.T) {
	tests := []struct {
		typeOf   string
		expected MarkerCategory
	}{
		{"mw:Placeholder", MarkerPlaceholder},
		{"mw:Placeholder/UnclosedComment", MarkerPlaceholder},
		{"mw:Includes/IncludeOnly", MarkerIncludeOnlyStart},
		{"mw:Includes/IncludeOnly/End", MarkerIncludeOnlyEnd},
		{"mw:Includes/NoInclude", MarkerNoIncludeStart},
		{"mw:Includes/NoInclude/End", MarkerNoIncludeEnd},
		{"mw:Includes/OnlyInclude", MarkerOnlyIncludeStart},
		{"mw:Includes/OnlyInclude/End", MarkerOnlyIncludeEnd},
		{"mw:DiffMarker/inserted", MarkerDiff},
		{"mw:Transclusion mw:Includes/NoInclude", MarkerNoIncludeStart},
		{"mw:Transclusion", MarkerUnknown},
		{"", MarkerUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyMarker(tt.typeOf); got != tt.expected {
			t.Errorf("ClassifyMarker(%q) = %v, want %v", tt.typeOf, got, tt.expected)
		}
	}
}

// meta builds a marker node from attribute pairs, with optional recorded
// source.
func meta(src string, attrs ...string) *Node {
	n := elem("meta")
	for i := 0; i+1 < len(attrs); i += 2 {
		n.SetAttr(attrs[i], attrs[i+1])
	}
	n.DP.Src = src
	return n
}

func TestSerializeMarkers(t *testing.T) {
	tests := []struct {
		name     string
		node     *Node
		expected string
	}{
		{
			name:     "plain page property",
			node:     meta("", "property", "mw:PageProp/notoc"),
			expected: "__NOTOC__",
		},
		{
			name:     "category property without source",
			node:     meta("", "property", "mw:PageProp/defaultsort", "content", "Doe, John"),
			expected: "{{DEFAULTSORT:Doe, John}}",
		},
		{
			name:     "unknown property word renders uppercase with value",
			node:     meta("", "property", "mw:PageProp/frobnicate", "content", "v"),
			expected: "{{FROBNICATE:v}}",
		},
		{
			name:     "category property reuses source prefix",
			node:     meta("{{DEFAULTSORT:Old}}", "property", "mw:PageProp/defaultsort", "content", "New"),
			expected: "{{DEFAULTSORT:New}}",
		},
		{
			name:     "category source ending at the colon",
			node:     meta("{{DEFAULTSORT:", "property", "mw:PageProp/defaultsort", "content", "X"),
			expected: "{{DEFAULTSORT:X}}",
		},
		{
			name:     "category source without value slot kept verbatim",
			node:     meta("{{DEFAULTSORT}}", "property", "mw:PageProp/defaultsort", "content", "X"),
			expected: "{{DEFAULTSORT}}",
		},
		{
			name:     "placeholder emits recorded source",
			node:     meta("<!-- unclosed", "typeof", "mw:Placeholder/UnclosedComment"),
			expected: "<!-- unclosed",
		},
		{
			name:     "placeholder without source emits nothing",
			node:     meta("", "typeof", "mw:Placeholder"),
			expected: "",
		},
		{
			name:     "boundary marker emits recorded source",
			node:     meta("<noinclude >", "typeof", "mw:Includes/NoInclude"),
			expected: "<noinclude >",
		},
		{
			name:     "boundary marker falls back to canonical form",
			node:     meta("", "typeof", "mw:Includes/IncludeOnly/End"),
			expected: "</includeonly>",
		},
		{
			name:     "diff marker emits nothing",
			node:     meta("", "typeof", "mw:DiffMarker/deleted"),
			expected: "",
		},
		{
			name:     "unclassified meta falls through to generic handling",
			node:     meta("<meta something>", "typeof", "mw:Transclusion"),
			expected: "<meta something>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serialize(t, docWith(tt.node))
			if got != tt.expected {
				t.Errorf("Serialize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// A property attribute takes precedence over any typeof classification on
// the same node.
func TestSerializeMarkerPropertyFirst(t *testing.T) {
	n := meta("", "property", "mw:PageProp/notoc", "typeof", "mw:DiffMarker/inserted")
	if got, want := serialize(t, docWith(n)), "__NOTOC__"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

// A property whose value holds unexpanded template source still round-trips
// through the recorded source path.
func TestSerializeMarkerPropertyWithTemplateValue(t *testing.T) {
	n := meta("{{DEFAULTSORT:{{PAGENAME}}}}",
		"property", "mw:PageProp/defaultsort", "content", "{{PAGENAME}}")
	if got, want := serialize(t, docWith(n)), "{{DEFAULTSORT:{{PAGENAME}}}}"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}
