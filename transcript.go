package wikirt

import (
	"fmt"
	"os"
	"strings"
)

// Manual-dialect line markers. The first byte of a line selects its role;
// lines with any other marker are ignored.
const (
	markerComment   = '#' // comment, ignored
	markerTest      = ':' // named-test delimiter
	markerDirective = '@' // selects the transformer the following tests apply to
	markerInput     = '>' // one input token
	markerResult    = '=' // expected serialized token-array for accumulated input
)

// ManualTest is one test from a hand-written transcript: the input tokens
// accumulated since the previous result line, and the expected serialized
// output.
type ManualTest struct {
	Name        string
	Transformer string // directive in force; empty applies to any transformer
	Input       []string
	Expected    string
	Line        int // 1-based line number of the result line
}

// Transcript is the parsed form of a transcript file. It is parsed from its
// backing storage exactly once and reused across timing iterations: the
// caller owns it, initializes it once, and only reads it afterwards.
type Transcript struct {
	Path  string
	Lines []string

	// Events holds the generated-dialect view of the file.
	Events []Event
	// Manual holds the hand-written-dialect view of the file.
	Manual []ManualTest
}

// LoadTranscript reads and parses a transcript file. Both dialect views are
// built up front so replay iterations never touch the file again.
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- transcript path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptRead, err)
	}

	tr := &Transcript{
		Path:  path,
		Lines: strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"),
	}
	tr.parseGenerated()
	tr.parseManual()
	return tr, nil
}

// parseGenerated collects every line carrying an extractable pipeline id.
// All other lines are dropped from pipeline processing.
func (tr *Transcript) parseGenerated() {
	for i, line := range tr.Lines {
		if ev, ok := ParseEventLine(line, i+1); ok {
			tr.Events = append(tr.Events, ev)
		}
	}
}

// parseManual walks the line markers, accumulating input lines until each
// result line closes out one test.
func (tr *Transcript) parseManual() {
	var (
		name      string
		directive string
		input     []string
	)
	for i, line := range tr.Lines {
		if line == "" {
			continue
		}
		rest := strings.TrimSpace(line[1:])
		switch line[0] {
		case markerComment:
			// ignored
		case markerTest:
			name = rest
		case markerDirective:
			directive = rest
		case markerInput:
			input = append(input, rest)
		case markerResult:
			tr.Manual = append(tr.Manual, ManualTest{
				Name:        name,
				Transformer: directive,
				Input:       input,
				Expected:    rest,
				Line:        i + 1,
			})
			input = nil
		default:
			// Unrecognized marker: ignored, not an error.
		}
	}
}

// Line returns the raw recorded line at a 1-based position, for debugging
// hooks.
func (tr *Transcript) Line(n int) (string, bool) {
	if n < 1 || n > len(tr.Lines) {
		return "", false
	}
	return tr.Lines[n-1], true
}
