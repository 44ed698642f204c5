package agent

import "errors"

var (
	// ErrAgentNotFound indicates the agent doesn't exist.
	ErrAgentNotFound = errors.New("agent not found")
	// ErrInvalidInput indicates invalid agent input.
	ErrInvalidInput = errors.New("invalid agent input")
)
