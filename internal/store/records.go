// Package store implements the domain repositories over docstore collections.
package store

import (
	"context"
	"slices"

	"github.com/rpggio/stratdesk/internal/docstore"
	"github.com/rpggio/stratdesk/internal/repository"
)

// Records is the CRUD shape shared by every collection-backed repository. Each
// operation is one atomic read-modify-write of the whole collection.
type Records[T docstore.Record] struct {
	coll *docstore.Collection[T]
}

func newRecords[T docstore.Record](docs *docstore.Store, key string) Records[T] {
	return Records[T]{coll: docstore.NewCollection[T](docs, key)}
}

// List returns every record. Reads never fail; see docstore.Collection.ReadAll.
func (r *Records[T]) List(ctx context.Context) ([]T, error) {
	return r.coll.ReadAll(ctx), nil
}

// Get returns repository.ErrNotFound when no record has id.
func (r *Records[T]) Get(ctx context.Context, id string) (*T, error) {
	v, ok := r.coll.Find(ctx, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

// Create appends v, rejecting a duplicate id with repository.ErrConflict.
func (r *Records[T]) Create(ctx context.Context, v *T) error {
	id := (*v).RecordID()
	return r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		for _, item := range items {
			if item.RecordID() == id {
				return nil, repository.ErrConflict
			}
		}
		return append(items, *v), nil
	})
}

// Update applies fn to the record with id and persists it. If fn fails nothing is written.
func (r *Records[T]) Update(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	var out T
	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		i := slices.IndexFunc(items, func(item T) bool { return item.RecordID() == id })
		if i < 0 {
			return nil, repository.ErrNotFound
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		out = items[i]
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record with id and returns it.
func (r *Records[T]) Delete(ctx context.Context, id string) (*T, error) {
	var removed T
	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		i := slices.IndexFunc(items, func(item T) bool { return item.RecordID() == id })
		if i < 0 {
			return nil, repository.ErrNotFound
		}
		removed = items[i]
		return slices.Delete(items, i, i+1), nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Seed binds initial contents for docstore.Store.SeedOnce.
func (r *Records[T]) Seed(items []T) docstore.Seed {
	return r.coll.Seed(items)
}

// SeedIfAbsent writes items only if the collection slot was never written.
func (r *Records[T]) SeedIfAbsent(ctx context.Context, items []T) (bool, error) {
	return r.coll.SeedIfAbsent(ctx, items)
}

func (r *Records[T]) filter(ctx context.Context, keep func(T) bool) []T {
	return r.coll.Filter(ctx, keep)
}

func (r *Records[T]) count(ctx context.Context, keep func(T) bool) int {
	return len(r.coll.Filter(ctx, keep))
}
