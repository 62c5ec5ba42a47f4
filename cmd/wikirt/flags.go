package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	wikirt "github.com/wikirt/go-wikirt"
)

// Sentinel errors for CLI argument handling.
var (
	ErrNoInput        = errors.New("missing required --inputFile")
	ErrNoTransformer  = errors.New("exactly one transformer flag is required")
	ErrManyTransforms = errors.New("more than one transformer flag given")
)

// replayFlags holds every flag of the replay driver.
type replayFlags struct {
	manual     bool
	log        bool
	breakLine  int
	timingMode bool
	verbose    bool
	iterations int
	inputFile  string
	configFile string

	// transformers maps each catalogue name to its selector flag value.
	transformers map[string]*bool
}

// parseFlags parses args (excluding the program name). Unknown flags and
// missing required flags surface as errors; main prints usage and exits 1.
func parseFlags(args []string) (*replayFlags, error) {
	fs := flag.NewFlagSet("wikirt", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // usage printing is main's job, on stdout

	f := &replayFlags{transformers: make(map[string]*bool)}
	fs.BoolVar(&f.manual, "manual", false, "transcript is in the hand-written dialect")
	fs.BoolVar(&f.log, "log", false, "enable diagnostic logging")
	fs.IntVar(&f.breakLine, "breakLine", 0, "log the recorded line at this position when replay reaches it")
	fs.BoolVar(&f.timingMode, "timingMode", false, "repeat the replay and report timings")
	fs.BoolVar(&f.verbose, "verbose", false, "log every test outcome")
	fs.IntVar(&f.iterations, "iterationCount", wikirt.DefaultIterations, "timing-mode repeat count")
	fs.StringVar(&f.inputFile, "inputFile", "", "transcript file to replay (required)")
	fs.StringVar(&f.configFile, "config", "", "site configuration YAML")

	// One selector flag per catalogue transformer.
	for _, name := range wikirt.TransformerNames() {
		f.transformers[name] = fs.Bool(name, false, "replay against "+name)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.inputFile == "" {
		return nil, ErrNoInput
	}
	if _, err := f.transformer(); err != nil {
		return nil, err
	}
	return f, nil
}

// transformer returns the single selected catalogue name.
func (f *replayFlags) transformer() (string, error) {
	selected := ""
	for _, name := range wikirt.TransformerNames() {
		if !*f.transformers[name] {
			continue
		}
		if selected != "" {
			return "", fmt.Errorf("%w: --%s and --%s", ErrManyTransforms, selected, name)
		}
		selected = name
	}
	if selected == "" {
		return "", ErrNoTransformer
	}
	return selected, nil
}

// printUsage writes the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: wikirt --inputFile PATH --<TransformerName> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replays a recorded transformer transcript and compares every batch")
	fmt.Fprintln(w, "against its expected output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transformers (exactly one):")
	for _, name := range wikirt.TransformerNames() {
		fmt.Fprintf(w, "  --%s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --manual             transcript is in the hand-written dialect")
	fmt.Fprintln(w, "  --log                enable diagnostic logging")
	fmt.Fprintln(w, "  --breakLine N        log recorded line N when the replay reaches it")
	fmt.Fprintln(w, "  --timingMode         repeat the replay and report timings")
	fmt.Fprintln(w, "  --iterationCount=N   timing-mode repeat count (default 10000)")
	fmt.Fprintln(w, "  --verbose            log every test outcome")
	fmt.Fprintln(w, "  --config PATH        site configuration YAML")
	fmt.Fprintln(w, "  --inputFile PATH     transcript file to replay (required)")
}

// usageExit prints usage to standard output and exits with status 1.
func usageExit(err error) {
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
	}
	printUsage(os.Stdout)
	os.Exit(exitFailure)
}
