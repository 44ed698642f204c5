// Package kv defines the flat key-value contract the document store persists to.
package kv

import "context"

// UpdateFunc receives the current value (ok is false when the key is absent) and returns
// the value to store. Returning write=false leaves the key untouched. A non-nil error
// aborts the update and is returned to the caller unchanged.
type UpdateFunc func(old string, ok bool) (value string, write bool, err error)

// Store is a string-keyed, string-valued backing store.
type Store interface {
	// Get returns the value for key; ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites key with value in a single write.
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent writes value only when key is absent and reports whether it wrote.
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)
	// Update performs an atomic read-modify-write of a single key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
