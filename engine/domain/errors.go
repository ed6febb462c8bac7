package domain

import "errors"

// Sentinel errors shared across the engine.
var (
	// ErrEmptyCompletion is returned when a generation call succeeds at the
	// transport level but carries no choices.
	ErrEmptyCompletion = errors.New("empty completion response")

	// ErrProvider marks failures of the hosted generation/embedding API.
	ErrProvider = errors.New("model provider error")
)
