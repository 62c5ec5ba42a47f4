package main

import (
	"errors"
	"testing"
)

func TestParseFlags(t *testing.T) {
	f, err := parseFlags([]string{
		"--inputFile", "run.txt", "--QuoteTransformer",
		"--manual", "--timingMode", "--iterationCount", "50",
		"--breakLine", "12", "--verbose",
	})
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}

	if f.inputFile != "run.txt" {
		t.Errorf("inputFile = %q", f.inputFile)
	}
	if !f.manual || !f.timingMode || !f.verbose {
		t.Errorf("boolean flags = %+v", f)
	}
	if f.iterations != 50 || f.breakLine != 12 {
		t.Errorf("iterations = %d, breakLine = %d", f.iterations, f.breakLine)
	}

	name, err := f.transformer()
	if err != nil {
		t.Fatalf("transformer() error: %v", err)
	}
	if name != "QuoteTransformer" {
		t.Errorf("transformer() = %q", name)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{
			name:     "missing input file",
			args:     []string{"--QuoteTransformer"},
			expected: ErrNoInput,
		},
		{
			name:     "missing transformer",
			args:     []string{"--inputFile", "run.txt"},
			expected: ErrNoTransformer,
		},
		{
			name:     "two transformers",
			args:     []string{"--inputFile", "run.txt", "--QuoteTransformer", "--ListHandler"},
			expected: ErrManyTransforms,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			if !errors.Is(err, tt.expected) {
				t.Errorf("parseFlags(%v) error = %v, want %v", tt.args, err, tt.expected)
			}
		})
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"--inputFile", "run.txt", "--QuoteTransformer", "--bogus"})
	if err == nil {
		t.Fatal("parseFlags() with an unknown flag should fail")
	}
}

func TestEveryTransformerHasAFlag(t *testing.T) {
	for _, name := range []string{
		"IncludeHandler", "TokenStreamPatcher", "BehaviorSwitchHandler",
		"QuoteTransformer", "ListHandler", "Sanitizer", "PreHandler",
		"ParagraphWrapper",
	} {
		f, err := parseFlags([]string{"--inputFile", "run.txt", "--" + name})
		if err != nil {
			t.Fatalf("parseFlags(--%s) error: %v", name, err)
		}
		got, err := f.transformer()
		if err != nil || got != name {
			t.Errorf("transformer() = %q, %v, want %q", got, err, name)
		}
	}
}
