package repository

import "fmt"

// DeletePolicy decides what happens when a parent with live children is deleted.
type DeletePolicy string

const (
	// DeleteForbid rejects the delete while children still reference the parent.
	DeleteForbid DeletePolicy = "forbid"
	// DeleteOrphan deletes the parent and leaves children with a dangling reference.
	DeleteOrphan DeletePolicy = "orphan"
)

// ParseDeletePolicy maps a config value to a policy. Empty means DeleteForbid.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case "", DeleteForbid:
		return DeleteForbid, nil
	case DeleteOrphan:
		return DeleteOrphan, nil
	default:
		return "", fmt.Errorf("%w: unknown delete policy %q", ErrInvalidInput, s)
	}
}
