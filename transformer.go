package wikirt

import "fmt"

// TransformOptions carries per-batch context through a chain. A nil options
// value is treated as the zero value.
type TransformOptions struct {
	// InTransclusion marks batches produced while expanding a template.
	// Several stages behave differently there (pre suppression, stricter
	// sanitization, late-stage patching).
	InTransclusion bool
	// IsInclude selects the filtering mode of the include stage: true when
	// processing content for inclusion into another page.
	IsInclude bool
	// SOL marks that the batch begins at the start of a source line.
	SOL bool
}

// ResetOptions configures a state reset.
type ResetOptions struct {
	// TopLevel marks the start of a fresh top-level document.
	TopLevel bool
}

// Transformer is one stateful stage of a pipeline. Process must be a
// function of its internal state and the input batch only: no I/O, no
// blocking. A stage may emit fewer, more, or zero tokens per input token.
// Malformed individual tokens are skipped with a diagnostic, never fatal
// for the batch.
type Transformer interface {
	Process(toks []Token, opts *TransformOptions) []Token
	ResetState(opts ResetOptions)
}

// stageEntry registers one catalogue transformer.
type stageEntry struct {
	name    string
	factory func(*Env) Transformer
}

// catalogue lists every registered transformer in pipeline order. The order
// is fixed: stage i's output is stage i+1's input in a default chain, and
// the replay driver accepts exactly these names as selectors.
var catalogue = []stageEntry{
	{"IncludeHandler", func(e *Env) Transformer { return NewIncludeHandler(e) }},
	{"TokenStreamPatcher", func(e *Env) Transformer { return NewTokenStreamPatcher(e) }},
	{"BehaviorSwitchHandler", func(e *Env) Transformer { return NewBehaviorSwitchHandler(e) }},
	{"QuoteTransformer", func(e *Env) Transformer { return NewQuoteTransformer(e) }},
	{"ListHandler", func(e *Env) Transformer { return NewListHandler(e) }},
	{"Sanitizer", func(e *Env) Transformer { return NewSanitizer(e) }},
	{"PreHandler", func(e *Env) Transformer { return NewPreHandler(e) }},
	{"ParagraphWrapper", func(e *Env) Transformer { return NewParagraphWrapper(e) }},
}

// TransformerNames returns the catalogue names in pipeline order.
func TransformerNames() []string {
	names := make([]string, len(catalogue))
	for i, s := range catalogue {
		names[i] = s.name
	}
	return names
}

// IsTransformerName reports whether name is in the catalogue.
func IsTransformerName(name string) bool {
	for _, s := range catalogue {
		if s.name == name {
			return true
		}
	}
	return false
}

// Chain is an ordered pipeline of transformer stages sharing one Env. A
// chain's stage state belongs to exactly one pipeline at a time; it must
// never be driven concurrently.
type Chain struct {
	env    *Env
	names  []string
	stages []Transformer
}

// NewChain builds a chain of the named stages in catalogue order,
// regardless of argument order. With no names it is empty (identity).
func NewChain(env *Env, names ...string) (*Chain, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if !IsTransformerName(n) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransformer, n)
		}
		want[n] = true
	}
	c := &Chain{env: env}
	for _, s := range catalogue {
		if want[s.name] {
			c.names = append(c.names, s.name)
			c.stages = append(c.stages, s.factory(env))
		}
	}
	return c, nil
}

// NewDefaultChain builds a chain of the full catalogue.
func NewDefaultChain(env *Env) *Chain {
	c, _ := NewChain(env, TransformerNames()...)
	return c
}

// Process runs the batch through every stage in order.
func (c *Chain) Process(toks []Token, opts *TransformOptions) []Token {
	if opts == nil {
		opts = &TransformOptions{}
	}
	for _, stage := range c.stages {
		toks = stage.Process(toks, opts)
	}
	return toks
}

// ResetState resets every stage. Call with TopLevel before processing a
// fresh document.
func (c *Chain) ResetState(opts ResetOptions) {
	for _, stage := range c.stages {
		stage.ResetState(opts)
	}
}

// Names returns the stage names in pipeline order.
func (c *Chain) Names() []string { return c.names }
