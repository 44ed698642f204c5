package pricing

import "errors"

var (
	// ErrPackageNotFound indicates the package doesn't exist.
	ErrPackageNotFound = errors.New("pricing package not found")
	// ErrPackageHasActiveClients indicates an active billing record references the package.
	ErrPackageHasActiveClients = errors.New("cannot delete package with active clients")
	// ErrInvalidInput indicates invalid package input.
	ErrInvalidInput = errors.New("invalid pricing package input")
)
