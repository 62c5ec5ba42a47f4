package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	wikirt "github.com/wikirt/go-wikirt"
	"github.com/wikirt/go-wikirt/internal/sitecfg"
)

// Exit codes. The driver reports only success or failure: any comparison
// mismatch, usage error, or I/O error exits 1.
const (
	exitSuccess = 0
	exitFailure = 1
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		usageExit(err)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	res, err := run(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
	if res.Failed > 0 {
		os.Exit(exitFailure)
	}
	os.Exit(exitSuccess)
}

// run loads the environment and transcript, replays, and prints the
// summary.
func run(flags *replayFlags) (wikirt.Result, error) {
	var cfg *sitecfg.Config
	if flags.configFile != "" {
		var err error
		cfg, err = sitecfg.Load(flags.configFile)
		if err != nil {
			return wikirt.Result{}, err
		}
	}
	env, err := wikirt.NewEnv(cfg)
	if err != nil {
		return wikirt.Result{}, err
	}
	env.Logger = newLogger(flags)

	// A sibling source file supplies the original page text.
	if src, ok := loadPageSource(flags.inputFile); ok {
		env.PageSrc = src
	}

	tr, err := wikirt.LoadTranscript(flags.inputFile)
	if err != nil {
		return wikirt.Result{}, err
	}

	transformer, err := flags.transformer()
	if err != nil {
		return wikirt.Result{}, err
	}

	opts := wikirt.ReplayOptions{
		Transformer: transformer,
		Manual:      flags.manual,
		Timing:      flags.timingMode,
		Iterations:  flags.iterations,
		BreakLine:   flags.breakLine,
		Verbose:     flags.verbose,
	}

	start := time.Now()
	res, err := wikirt.NewOracle(env, tr).Run(opts)
	elapsed := time.Since(start)
	if err != nil {
		return res, err
	}

	printSummary(res, elapsed)
	return res, nil
}

// newLogger builds the diagnostic sink: warnings and errors by default,
// everything with --log.
func newLogger(flags *replayFlags) *slog.Logger {
	level := slog.LevelWarn
	if flags.log || flags.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadPageSource reads the sibling file with the extension replaced by .wt,
// when present.
func loadPageSource(inputFile string) (string, bool) {
	ext := filepath.Ext(inputFile)
	wtPath := strings.TrimSuffix(inputFile, ext) + ".wt"
	data, err := os.ReadFile(wtPath) // #nosec G304 -- derived from user-provided path
	if err != nil {
		return "", false
	}
	return string(data), true
}

// printSummary reports timings and counts.
func printSummary(res wikirt.Result, elapsed time.Duration) {
	fmt.Printf("Total time: %v\n", elapsed)
	fmt.Printf("Transform time: %v\n", res.TransformTime)
	fmt.Printf("Passed: %d, Failed: %d, Skipped: %d\n", res.Passed, res.Failed, res.Skipped)
}
