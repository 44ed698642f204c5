// Package docstore maps named collections onto single slots of a kv.Store, each
// holding the whole collection as one JSON array.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/stratdesk/internal/kv"
)

// ErrCorrupt reports a persisted slot that does not decode. Reads degrade to an empty
// collection; mutations refuse to overwrite the slot.
var ErrCorrupt = errors.New("docstore: malformed collection data")

// Record is anything stored in a collection.
type Record interface {
	RecordID() string
}

// Store owns the backing kv.Store shared by every collection.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
}

// New creates a document store over backing. A nil logger discards output.
func New(backing kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: backing, logger: logger}
}

// Seed writes one collection's initial contents. See Collection.Seed.
type Seed func(ctx context.Context) (bool, error)

// SeedOnce applies seeds unless flagKey is already set, then sets it. Each seed only
// writes a slot that is still absent, so a partially seeded store is completed without
// overwriting anything.
func (s *Store) SeedOnce(ctx context.Context, flagKey string, seeds ...Seed) (bool, error) {
	_, done, err := s.kv.Get(ctx, flagKey)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", flagKey, err)
	}
	if done {
		return false, nil
	}

	for _, seed := range seeds {
		if _, err := seed(ctx); err != nil {
			return false, err
		}
	}

	if _, err := s.kv.SetIfAbsent(ctx, flagKey, "true"); err != nil {
		return false, fmt.Errorf("set %s: %w", flagKey, err)
	}
	s.logger.Info("seeded store", "flag", flagKey, "collections", len(seeds))
	return true, nil
}
