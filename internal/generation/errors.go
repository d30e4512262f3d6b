package generation

import "errors"

// Common errors returned by Assistant implementations
var (
	// ErrGenerationFailed is returned when the assistant fails for any general reason
	ErrGenerationFailed = errors.New("assistant request failed")

	// ErrInvalidResponse is returned when the model response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for transport or availability problems
	ErrTransientFailure = errors.New("transient error calling language model")

	// ErrInvalidConfig is returned when the assistant configuration is invalid
	ErrInvalidConfig = errors.New("invalid assistant configuration")

	// ErrEmptyRequest is returned when a request carries no usable input
	ErrEmptyRequest = errors.New("assistant request is empty")
)
