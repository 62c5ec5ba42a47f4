package wikirt

import "testing"

func TestPreHandler(t *testing.T) {
	tests := []struct {
		name     string
		input    []Token
		expected string
	}{
		{
			name:     "indented line wrapped",
			input:    []Token{NewText(" code"), NewEOF()},
			expected: `[{tag:pre},code,{endtag:pre},{eof}]`,
		},
		{
			name: "consecutive indented lines share one block",
			input: []Token{
				NewText(" a"), NewNewline(), NewText(" b"), NewEOF(),
			},
			expected: `[{tag:pre},"a\nb",{endtag:pre},{eof}]`,
		},
		{
			name: "blank line inside the block keeps both newlines",
			input: []Token{
				NewText(" a"), NewNewline(), NewNewline(), NewText(" b"), NewEOF(),
			},
			expected: `[{tag:pre},"a\n\nb",{endtag:pre},{eof}]`,
		},
		{
			name: "held newlines all released when the block ends",
			input: []Token{
				NewText(" a"), NewNewline(), NewNewline(), NewText("b"), NewEOF(),
			},
			expected: `[{tag:pre},a,{endtag:pre},{nl},{nl},b,{eof}]`,
		},
		{
			name: "unindented line ends the block",
			input: []Token{
				NewText(" a"), NewNewline(), NewText("b"), NewEOF(),
			},
			expected: `[{tag:pre},a,{endtag:pre},{nl},b,{eof}]`,
		},
		{
			name:     "mid-line space is not indent",
			input:    []Token{NewText("a"), NewNewline(), NewText("b c"), NewEOF()},
			expected: `[a,{nl},"b c",{eof}]`,
		},
		{
			name: "tag at start of line ends the block",
			input: []Token{
				NewText(" a"), NewNewline(), NewTag("div"), NewEOF(),
			},
			expected: `[{tag:pre},a,{endtag:pre},{nl},{tag:div},{eof}]`,
		},
		{
			name:     "block still open at eof closed",
			input:    []Token{NewText(" a"), NewEOF()},
			expected: `[{tag:pre},a,{endtag:pre},{eof}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPreHandler(testEnv(t))
			got := EncodeTokens(p.Process(tt.input, nil))
			if got != tt.expected {
				t.Errorf("Process() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// Indent-pre syntax is inert inside transclusion content.
func TestPreHandlerInertInTransclusion(t *testing.T) {
	p := NewPreHandler(testEnv(t))
	in := []Token{NewText(" a"), NewEOF()}
	got := EncodeTokens(p.Process(in, &TransformOptions{InTransclusion: true}))
	if want := `[" a",{eof}]`; got != want {
		t.Errorf("Process() = %q, want %q", got, want)
	}
}

func TestPreHandlerStateAcrossBatches(t *testing.T) {
	p := NewPreHandler(testEnv(t))

	first := EncodeTokens(p.Process([]Token{NewText(" a"), NewNewline()}, nil))
	if want := `[{tag:pre},a]`; first != want {
		t.Fatalf("first batch = %q, want %q", first, want)
	}

	// The held newline joins the continuation line inside the block.
	second := EncodeTokens(p.Process([]Token{NewText(" b"), NewEOF()}, nil))
	if want := `["\nb",{endtag:pre},{eof}]`; second != want {
		t.Errorf("second batch = %q, want %q", second, want)
	}
}
