package translate

import "errors"

var (
	// ErrMissingAPIKey is returned before any network call when AI mode was
	// requested but no Gemini API key is configured.
	ErrMissingAPIKey = errors.New("no Gemini API key configured")

	// ErrNoCandidates is returned when the model produced no output at all.
	ErrNoCandidates = errors.New("no candidates in response")

	// ErrInvalidOutput is returned when the model output does not conform to
	// the search parameter schema.
	ErrInvalidOutput = errors.New("model output does not match search parameter schema")
)
