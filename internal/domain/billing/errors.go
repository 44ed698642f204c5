package billing

import "errors"

var (
	// ErrBillingNotFound indicates the billing record doesn't exist.
	ErrBillingNotFound = errors.New("billing record not found")
	// ErrInvalidInput indicates invalid billing input.
	ErrInvalidInput = errors.New("invalid billing input")
)
