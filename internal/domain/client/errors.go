package client

import "errors"

var (
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrClientHasProjects indicates live projects still reference the client.
	ErrClientHasProjects = errors.New("client has projects")
	// ErrInvalidInput indicates invalid client input.
	ErrInvalidInput = errors.New("invalid client input")
)
