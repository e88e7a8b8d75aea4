package entity

import "errors"

// Domain errors
var (
	// Generation errors. Both are recovered locally with fallback content
	// and never reach the HTTP boundary.
	ErrBackendUnavailable  = errors.New("generation backend unavailable")
	ErrMalformedGeneration = errors.New("malformed generation output")

	// Session errors
	ErrSessionMissing = errors.New("no interview session found")
	ErrSessionEnded   = errors.New("interview session already ended")

	// Report errors
	ErrUnsupportedFormat = errors.New("unsupported report format")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
