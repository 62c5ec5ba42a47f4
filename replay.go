package wikirt

import (
	"fmt"
	"strings"
	"time"
)

// DefaultIterations is the timing-mode repeat count when none is given.
const DefaultIterations = 10000

// NormalizeResult prepares a serialized token-array for comparison by
// rewriting the empty-object literal to the empty-array literal. The two
// are interchangeable encodings of "no attributes"; absorbing the
// difference here keeps the comparison itself exact. Normalizing an
// already-normalized string is a no-op.
func NormalizeResult(s string) string {
	return strings.ReplaceAll(s, "{}", "[]")
}

// ReplayOptions configures one oracle run.
type ReplayOptions struct {
	// Transformer is the catalogue name under test. Required.
	Transformer string
	// Manual selects the hand-written dialect; otherwise the generated
	// dialect is replayed through the reconciler.
	Manual bool
	// Timing repeats the replay Iterations times over the cached
	// transcript.
	Timing bool
	// Iterations overrides DefaultIterations when positive.
	Iterations int
	// BreakLine logs the recorded line at this 1-based position when the
	// replay reaches it. Debugging hook; zero disables it.
	BreakLine int
	// Verbose logs every test outcome, not just mismatches.
	Verbose bool
	// Transform carries the batch context handed to every Process call.
	Transform TransformOptions
}

// iterations resolves the repeat count.
func (o ReplayOptions) iterations() int {
	if !o.Timing {
		return 1
	}
	if o.Iterations > 0 {
		return o.Iterations
	}
	return DefaultIterations
}

// Oracle replays a cached transcript against a transformer chain and counts
// exact-match results. A failed comparison fails one test and the run
// proceeds; there is no isolation of a fatal transformer-internal fault,
// which aborts the whole run.
type Oracle struct {
	env *Env
	tr  *Transcript
}

// NewOracle pairs an environment with a parsed transcript.
func NewOracle(env *Env, tr *Transcript) *Oracle {
	return &Oracle{env: env, tr: tr}
}

// Run replays the transcript. In timing mode the whole replay repeats over
// the already-parsed transcript and counts accumulate across iterations.
func (o *Oracle) Run(opts ReplayOptions) (Result, error) {
	if !IsTransformerName(opts.Transformer) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownTransformer, opts.Transformer)
	}
	if opts.Manual && len(o.tr.Manual) == 0 || !opts.Manual && len(o.tr.Events) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoTests, o.tr.Path)
	}

	var total Result
	for i := 0; i < opts.iterations(); i++ {
		var res Result
		var err error
		if opts.Manual {
			res, err = o.runManual(opts)
		} else {
			res, err = o.runGenerated(opts)
		}
		if err != nil {
			return total, err
		}
		total.merge(res)
	}
	return total, nil
}

// runManual replays the hand-written dialect: one chain, reset between
// sub-tests, tests under a non-matching directive skipped.
func (o *Oracle) runManual(opts ReplayOptions) (Result, error) {
	chain, err := NewChain(o.env, opts.Transformer)
	if err != nil {
		return Result{}, err
	}
	chain.ResetState(ResetOptions{TopLevel: true})

	var res Result
	for _, test := range o.tr.Manual {
		if test.Transformer != "" && test.Transformer != opts.Transformer {
			res.Skipped++
			if opts.Verbose {
				o.env.Logger.Info("skipping test under foreign directive",
					"test", test.Name, "directive", test.Transformer)
			}
			continue
		}
		o.breakLine(opts, test.Line)

		chain.ResetState(ResetOptions{})
		batch := o.decodeBatch(test.Input, test.Line)

		start := time.Now()
		out := chain.Process(batch, &opts.Transform)
		res.TransformTime += time.Since(start)

		actual := NormalizeResult(EncodeTokens(out))
		expected := NormalizeResult(test.Expected)
		if actual == expected {
			res.Passed++
			if opts.Verbose {
				o.env.Logger.Info("test passed", "test", test.Name)
			}
		} else {
			res.Failed++
			o.env.Logger.Error("test failed",
				"test", test.Name, "line", test.Line,
				"expected", expected, "actual", actual)
		}
	}
	return res, nil
}

// runGenerated replays the generated dialect through the reconciler. Each
// pipeline gets its own chain, created at first use and reset for a fresh
// document.
func (o *Oracle) runGenerated(opts ReplayOptions) (Result, error) {
	chains := make(map[int]*Chain)
	chainFor := func(pipeline int) (*Chain, error) {
		if c, ok := chains[pipeline]; ok {
			return c, nil
		}
		c, err := NewChain(o.env, opts.Transformer)
		if err != nil {
			return nil, err
		}
		c.ResetState(ResetOptions{TopLevel: true})
		chains[pipeline] = c
		return c, nil
	}

	var chainErr error
	validate := func(pipeline int, batch []Token, expected string) (bool, time.Duration) {
		chain, err := chainFor(pipeline)
		if err != nil {
			chainErr = err
			return false, 0
		}

		start := time.Now()
		out := chain.Process(batch, &opts.Transform)
		dt := time.Since(start)

		actual := NormalizeResult(EncodeTokens(out))
		want := NormalizeResult(expected)
		if actual == want {
			if opts.Verbose {
				o.env.Logger.Info("batch passed", "pipeline", pipeline)
			}
			return true, dt
		}
		o.env.Logger.Error("batch failed",
			"pipeline", pipeline, "expected", want, "actual", actual)
		return false, dt
	}

	// The debugging hook fires when a pipeline's replay reaches the
	// recorded line, not after the run.
	res := reconcileEvents(o.env, o.tr.Events, validate, func(ev Event) {
		o.breakLine(opts, ev.Line)
	})
	if chainErr != nil {
		return res, chainErr
	}
	return res, nil
}

// decodeBatch parses recorded input lines, skipping malformed tokens with a
// diagnostic.
func (o *Oracle) decodeBatch(lines []string, at int) []Token {
	var batch []Token
	for _, line := range lines {
		tok, err := DecodeToken(line)
		if err != nil {
			o.env.logf("skipping malformed token", "near", at, "err", err)
			continue
		}
		batch = append(batch, tok)
	}
	return batch
}

// breakLine surfaces the recorded line when the debugging hook fires.
func (o *Oracle) breakLine(opts ReplayOptions, line int) {
	if opts.BreakLine == 0 || opts.BreakLine != line {
		return
	}
	if raw, ok := o.tr.Line(line); ok {
		o.env.Logger.Info("break line reached", "line", line, "content", raw)
	}
}
