// Package jsonutil implements the lexical layer of the compact JSON-like
// form used by transcripts: top-level splitting, balanced-blob checks, and
// the quoting rules for bare identifiers. Keeping it separate isolates the
// grammar so the token mapping above it stays declarative.
package jsonutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for lexical operations.
var (
	ErrEmpty      = errors.New("jsonutil: empty input")
	ErrUnbalanced = errors.New("jsonutil: unbalanced delimiters")
	ErrBadString  = errors.New("jsonutil: malformed quoted string")
)

// SplitTop splits s on commas at nesting depth zero. Braces, brackets, and
// quoted strings protect their contents. Leading and trailing spaces around
// each item are trimmed.
func SplitTop(s string) ([]string, error) {
	var items []string
	depth := 0
	start := 0
	inStr := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch c {
			case '\\':
				i++ // skip escaped byte
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return nil, ErrUnbalanced
			}
		case ',':
			if depth == 0 {
				items = append(items, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 || inStr {
		return nil, ErrUnbalanced
	}
	items = append(items, strings.TrimSpace(s[start:]))
	return items, nil
}

// Inner strips one outer pair of delimiters from s, verifying they match.
// Inner("{a,b}", '{', '}') returns "a,b".
func Inner(s string, open, close byte) (string, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("%w: %q", ErrUnbalanced, s)
	}
	if s[0] != open || s[len(s)-1] != close {
		return "", fmt.Errorf("%w: %q", ErrUnbalanced, s)
	}
	return s[1 : len(s)-1], nil
}

// CutKey splits an object item into its key and value at the first colon
// outside any nested structure. hasValue is false for bare keys.
func CutKey(item string) (key, value string, hasValue bool) {
	depth := 0
	inStr := false
	for i := 0; i < len(item); i++ {
		c := item[i]
		if inStr {
			switch c {
			case '\\':
				i++
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ':':
			if depth == 0 {
				return strings.TrimSpace(item[:i]), strings.TrimSpace(item[i+1:]), true
			}
		}
	}
	return strings.TrimSpace(item), "", false
}

// IsQuoted reports whether s is a double-quoted string literal.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Unquote decodes a quoted string literal, or returns s unchanged when it is
// a bare identifier.
func Unquote(s string) (string, error) {
	if !IsQuoted(s) {
		return s, nil
	}
	out, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadString, s)
	}
	return out, nil
}

// Quote returns s as a bare identifier when possible, else a quoted literal.
// The canonical encoder depends on this being deterministic.
func Quote(s string) string {
	if IsIdent(s) {
		return s
	}
	return strconv.Quote(s)
}

// IsIdent reports whether s can appear unquoted. Identifiers exclude the
// structural bytes of the form (comma, colon-free is not required, braces,
// brackets, quotes, whitespace) and must be non-empty.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.' || c == '/' || c == ':' || c == '#':
		default:
			return false
		}
	}
	return true
}

// Balanced reports whether s has matched braces, brackets, and quotes. Used
// to validate opaque sidecar blobs before passing them through verbatim.
func Balanced(s string) bool {
	depth := 0
	inStr := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch c {
			case '\\':
				i++
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && !inStr
}
