package wikirt

import "testing"

func TestSanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []Token
		opts     *TransformOptions
		expected string
	}{
		{
			name:     "allowed tag untouched",
			input:    []Token{NewTag("b"), NewText("x"), NewEndTag("b"), NewEOF()},
			expected: `[{tag:b},x,{endtag:b},{eof}]`,
		},
		{
			name:     "disallowed tag degrades to literal text",
			input:    []Token{NewTag("script"), NewText("x"), NewEndTag("script"), NewEOF()},
			expected: `["<script>","x</script>",{eof}]`,
		},
		{
			name: "disallowed attribute dropped",
			input: []Token{
				NewTag("span", Attr{Key: "class", Value: "x"}, Attr{Key: "bogus", Value: "y"}),
				NewEndTag("span"), NewEOF(),
			},
			expected: `[{tag:span,attribs:[[class,x]]},{endtag:span},{eof}]`,
		},
		{
			name: "event handler attribute always dropped",
			input: []Token{
				NewTag("div", Attr{Key: "onclick", Value: "f()"}),
				NewEndTag("div"), NewEOF(),
			},
			expected: `[{tag:div},{endtag:div},{eof}]`,
		},
		{
			name: "executable href dropped",
			input: []Token{
				NewTag("a", Attr{Key: "href", Value: "javascript:f()"}),
				NewEndTag("a"), NewEOF(),
			},
			expected: `[{tag:a},{endtag:a},{eof}]`,
		},
		{
			name: "plain href kept",
			input: []Token{
				NewTag("a", Attr{Key: "href", Value: "./Page"}),
				NewEndTag("a"), NewEOF(),
			},
			expected: `[{tag:a,attribs:[[href,./Page]]},{endtag:a},{eof}]`,
		},
		{
			name:     "meta allowed at top level",
			input:    []Token{NewSelfClosingTag("meta", Attr{Key: "property", Value: "mw:PageProp/notoc"}), NewEOF()},
			expected: `[{selfclose:meta,attribs:[[property,mw:PageProp/notoc]]},{eof}]`,
		},
		{
			name:     "meta dropped inside transclusion",
			input:    []Token{NewSelfClosingTag("meta", Attr{Key: "property", Value: "mw:PageProp/notoc"}), NewEOF()},
			opts:     &TransformOptions{InTransclusion: true},
			expected: `[{eof}]`,
		},
		{
			name:     "text never filtered",
			input:    []Token{NewText("<script> as text"), NewEOF()},
			expected: `["<script> as text",{eof}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			env.Logger = discardLogger()
			s := NewSanitizer(env)
			got := EncodeTokens(s.Process(tt.input, tt.opts))
			if got != tt.expected {
				t.Errorf("Process() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLiteralTagText(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{name: "open", token: NewTag("script"), expected: "<script>"},
		{name: "close", token: NewEndTag("script"), expected: "</script>"},
		{
			name:     "self-closing with attribute",
			token:    NewSelfClosingTag("input", Attr{Key: "type", Value: "text"}),
			expected: `<input type="text"/>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := literalTagText(tt.token); got != tt.expected {
				t.Errorf("literalTagText() = %q, want %q", got, tt.expected)
			}
		})
	}
}
