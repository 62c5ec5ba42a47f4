package wikirt

import "errors"

// Sentinel errors for library operations.
var (
	ErrBadToken           = errors.New("malformed token")
	ErrUnknownTransformer = errors.New("unknown transformer")

	// Transcript errors.
	ErrTranscriptRead = errors.New("failed to read transcript")
	ErrNoTests        = errors.New("transcript contains no tests")

	// Serialization errors.
	ErrNoSource = errors.New("node carries no recorded source")
)
