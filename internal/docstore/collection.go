package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/stratdesk/internal/metrics"
)

// Collection is a typed view of one slot.
type Collection[T Record] struct {
	store *Store
	key   string
}

func NewCollection[T Record](s *Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

// ReadAll returns every record. It never fails: an absent slot, an unavailable backend
// and malformed data all read as an empty collection.
func (c *Collection[T]) ReadAll(ctx context.Context) []T {
	metrics.Global().StoreReads.WithLabelValues(c.key).Inc()

	raw, ok, err := c.store.kv.Get(ctx, c.key)
	if err != nil {
		c.store.logger.Warn("collection unavailable, reading as empty", "collection", c.key, "error", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}

	items, err := decode[T](raw)
	if err != nil {
		metrics.Global().CorruptReads.WithLabelValues(c.key).Inc()
		c.store.logger.Warn("malformed collection, reading as empty", "collection", c.key, "error", err)
		return []T{}
	}
	return items
}

// Find returns the record with id.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool) {
	for _, item := range c.ReadAll(ctx) {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records matching keep, in stored order.
func (c *Collection[T]) Filter(ctx context.Context, keep func(T) bool) []T {
	out := []T{}
	for _, item := range c.ReadAll(ctx) {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// WriteAll replaces the whole collection with a single Set.
func (c *Collection[T]) WriteAll(ctx context.Context, items []T) error {
	data, err := encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.kv.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	metrics.Global().StoreWrites.WithLabelValues(c.key).Inc()
	return nil
}

// Mutate applies fn to the current contents and persists the result atomically.
// If fn returns an error nothing is written and the error is returned as is.
// fn may run more than once when the backend retries after a conflict, so it must
// not accumulate state across calls.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	err := c.store.kv.Update(ctx, c.key, func(old string, ok bool) (string, bool, error) {
		items := []T{}
		if ok {
			decoded, err := decode[T](old)
			if err != nil {
				metrics.Global().CorruptReads.WithLabelValues(c.key).Inc()
				return "", false, fmt.Errorf("collection %s: %w", c.key, err)
			}
			items = decoded
		}

		next, err := fn(items)
		if err != nil {
			return "", false, err
		}
		data, err := encode(next)
		if err != nil {
			return "", false, fmt.Errorf("encode %s: %w", c.key, err)
		}
		return data, true, nil
	})
	if err != nil {
		return err
	}
	metrics.Global().StoreWrites.WithLabelValues(c.key).Inc()
	return nil
}

// SeedIfAbsent writes items only if the slot has never been written.
func (c *Collection[T]) SeedIfAbsent(ctx context.Context, items []T) (bool, error) {
	data, err := encode(items)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", c.key, err)
	}
	wrote, err := c.store.kv.SetIfAbsent(ctx, c.key, data)
	if err != nil {
		return false, fmt.Errorf("seed %s: %w", c.key, err)
	}
	if wrote {
		metrics.Global().StoreWrites.WithLabelValues(c.key).Inc()
	}
	return wrote, nil
}

// Seed binds items for Store.SeedOnce.
func (c *Collection[T]) Seed(items []T) Seed {
	return func(ctx context.Context) (bool, error) {
		return c.SeedIfAbsent(ctx, items)
	}
}

func decode[T any](raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func encode[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
