package wikirt

import "testing"

func TestIncludeHandlerTopLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    []Token
		expected string
	}{
		{
			name: "includeonly region dropped",
			input: []Token{
				NewText("a"),
				NewTag("includeonly"), NewText("b"), NewEndTag("includeonly"),
				NewText("c"), NewEOF(),
			},
			expected: `[a,c,{eof}]`,
		},
		{
			name: "noinclude content kept, tags stripped",
			input: []Token{
				NewTag("noinclude"), NewText("x"), NewEndTag("noinclude"), NewEOF(),
			},
			expected: `[x,{eof}]`,
		},
		{
			name: "onlyinclude content kept, tags stripped",
			input: []Token{
				NewText("a"),
				NewTag("onlyinclude"), NewText("b"), NewEndTag("onlyinclude"),
				NewEOF(),
			},
			expected: `[a,b,{eof}]`,
		},
		{
			name: "eof escapes an unterminated region",
			input: []Token{
				NewTag("includeonly"), NewText("x"), NewEOF(),
			},
			expected: `[{eof}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewIncludeHandler(testEnv(t))
			got := EncodeTokens(h.Process(tt.input, nil))
			if got != tt.expected {
				t.Errorf("Process() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIncludeHandlerIncludeMode(t *testing.T) {
	opts := &TransformOptions{IsInclude: true}
	tests := []struct {
		name     string
		input    []Token
		expected string
	}{
		{
			name: "noinclude region dropped",
			input: []Token{
				NewTag("noinclude"), NewText("x"), NewEndTag("noinclude"),
				NewText("a"), NewEOF(),
			},
			expected: `[a,{eof}]`,
		},
		{
			name: "includeonly content kept, tags stripped",
			input: []Token{
				NewTag("includeonly"), NewText("x"), NewEndTag("includeonly"), NewEOF(),
			},
			expected: `[x,{eof}]`,
		},
		{
			name: "onlyinclude section excludes everything else",
			input: []Token{
				NewText("lead"),
				NewTag("onlyinclude"), NewText("x"), NewEndTag("onlyinclude"),
				NewText("trail"), NewEOF(),
			},
			expected: `[x,{eof}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewIncludeHandler(testEnv(t))
			got := EncodeTokens(h.Process(tt.input, opts))
			if got != tt.expected {
				t.Errorf("Process() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// Once an onlyinclude section has been seen, later batches without one
// contribute nothing.
func TestIncludeHandlerOnlyIncludeSticky(t *testing.T) {
	h := NewIncludeHandler(testEnv(t))
	opts := &TransformOptions{IsInclude: true}

	first := EncodeTokens(h.Process([]Token{
		NewTag("onlyinclude"), NewText("x"), NewEndTag("onlyinclude"),
	}, opts))
	if want := `[x]`; first != want {
		t.Fatalf("first batch = %q, want %q", first, want)
	}

	second := EncodeTokens(h.Process([]Token{NewText("y"), NewEOF()}, opts))
	if want := `[{eof}]`; second != want {
		t.Errorf("second batch = %q, want %q", second, want)
	}

	h.ResetState(ResetOptions{})
	third := EncodeTokens(h.Process([]Token{NewText("z"), NewEOF()}, opts))
	if want := `[z,{eof}]`; third != want {
		t.Errorf("after reset = %q, want %q", third, want)
	}
}
