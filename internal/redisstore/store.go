// Package redisstore implements the key-value backing store on Redis strings.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rpggio/stratdesk/internal/kv"
	"github.com/rpggio/stratdesk/internal/metrics"
)

type Store struct {
	redis *redis.Client
}

var _ kv.Store = (*Store)(nil)

func New(rdb *redis.Client) *Store {
	return &Store{redis: rdb}
}

// Open dials addr and verifies the connection.
func Open(ctx context.Context, addr, password string, db int) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(rdb), nil
}

func (s *Store) Close() error {
	return s.redis.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *Store) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	ok, err := s.redis.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %q: %w", key, err)
	}
	return ok, nil
}

// Update watches key, applies fn and commits in MULTI/EXEC. A concurrent write to
// key aborts the transaction and fn is retried against the new value until ctx ends.
func (s *Store) Update(ctx context.Context, key string, fn kv.UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, key).Result()
		ok := true
		if errors.Is(err, redis.Nil) {
			ok = false
		} else if err != nil {
			return fmt.Errorf("redis get %q: %w", key, err)
		}

		value, write, err := fn(old, ok)
		if err != nil || !write {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			return nil
		})
		return err
	}

	conflict := func() { metrics.Global().UpdateConflicts.WithLabelValues("redis").Inc() }
	return kv.RetryConflicts(ctx, conflict, func(ctx context.Context) (bool, error) {
		err := s.redis.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			return false, nil
		}
		return err == nil, err
	})
}
