package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/stratdesk/internal/metrics"
)

// Document is a slot holding a single JSON object rather than an array.
type Document[T any] struct {
	store *Store
	key   string
}

func NewDocument[T any](s *Store, key string) *Document[T] {
	return &Document[T]{store: s, key: key}
}

// Get returns the stored value, or def when the slot is absent, unreadable or malformed.
func (d *Document[T]) Get(ctx context.Context, def T) T {
	metrics.Global().StoreReads.WithLabelValues(d.key).Inc()

	raw, ok, err := d.store.kv.Get(ctx, d.key)
	if err != nil {
		d.store.logger.Warn("document unavailable, using default", "document", d.key, "error", err)
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		metrics.Global().CorruptReads.WithLabelValues(d.key).Inc()
		d.store.logger.Warn("malformed document, using default", "document", d.key, "error", err)
		return def
	}
	return v
}

// Mutate applies fn to the stored value (def when absent) and persists it atomically.
func (d *Document[T]) Mutate(ctx context.Context, def T, fn func(*T) error) (T, error) {
	var result T
	err := d.store.kv.Update(ctx, d.key, func(old string, ok bool) (string, bool, error) {
		v := def
		if ok {
			var stored T
			if err := json.Unmarshal([]byte(old), &stored); err != nil {
				metrics.Global().CorruptReads.WithLabelValues(d.key).Inc()
				return "", false, fmt.Errorf("document %s: %w: %v", d.key, ErrCorrupt, err)
			}
			v = stored
		}
		if err := fn(&v); err != nil {
			return "", false, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return "", false, fmt.Errorf("encode %s: %w", d.key, err)
		}
		result = v
		return string(data), true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	metrics.Global().StoreWrites.WithLabelValues(d.key).Inc()
	return result, nil
}
