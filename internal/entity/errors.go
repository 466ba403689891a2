package entity

import "errors"

// Domain errors
var (
	// Sequence errors
	ErrSequenceNotFound = errors.New("sequence not found")

	// Completion errors
	ErrCompletionFailed    = errors.New("completion request failed")
	ErrMalformedCompletion = errors.New("malformed AI response")

	// Context directory errors
	ErrContextLookup = errors.New("context lookup failed")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
