package docstore

import (
	"context"
	"errors"

	"github.com/rpggio/stratdesk/internal/metrics"
)

// Counter names a denormalized integer field on a parent record.
type Counter[T any] struct {
	Field string
	Ref   func(*T) *int
	// Touch runs on the parent after an increment, e.g. to refresh a last-active marker.
	Touch func(*T)
}

var errParentMissing = errors.New("parent missing")

// AdjustCounter adds delta to the counter on the parent with parentID, flooring the
// result at zero. It reports whether the parent exists; a missing parent is not an error.
func AdjustCounter[T Record](ctx context.Context, c *Collection[T], parentID string, counter Counter[T], delta int) (bool, error) {
	err := c.Mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].RecordID() != parentID {
				continue
			}
			n := counter.Ref(&items[i])
			*n += delta
			if *n < 0 {
				*n = 0
			}
			if delta > 0 && counter.Touch != nil {
				counter.Touch(&items[i])
			}
			return items, nil
		}
		return nil, errParentMissing
	})
	if errors.Is(err, errParentMissing) {
		c.store.logger.Debug("counter parent missing", "collection", c.key, "id", parentID, "field", counter.Field)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	metrics.Global().CounterAdjustments.WithLabelValues(c.key, counter.Field).Inc()
	return true, nil
}
