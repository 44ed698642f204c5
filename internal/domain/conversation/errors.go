package conversation

import "errors"

var (
	// ErrConversationNotFound indicates the conversation doesn't exist.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrInvalidInput indicates invalid conversation input.
	ErrInvalidInput = errors.New("invalid conversation input")
)
