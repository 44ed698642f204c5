package redisstore

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "start miniredis")
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return New(rdb), mr
}

func TestOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s, err := Open(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestGetSet(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "clients")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "clients", "[]"))
	v, ok, err := s.Get(ctx, "clients")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", v)

	raw, err := mr.Get("clients")
	require.NoError(t, err)
	require.Equal(t, "[]", raw)
}

func TestSetIfAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	wrote, err := s.SetIfAbsent(ctx, "initialized", "true")
	require.NoError(t, err)
	require.True(t, wrote)

	wrote, err = s.SetIfAbsent(ctx, "initialized", "false")
	require.NoError(t, err)
	require.False(t, wrote)
}

func TestUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, "k", func(old string, ok bool) (string, bool, error) {
		require.False(t, ok)
		return "a", true, nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Update(ctx, "k", func(old string, ok bool) (string, bool, error) {
		require.Equal(t, "a", old)
		return "b", true, boom
	})
	require.ErrorIs(t, err, boom)

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "a", v)
}

func TestUpdate_Concurrent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const workers = 30
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Update(ctx, "n", func(old string, ok bool) (string, bool, error) {
				n := 0
				if ok {
					n, _ = strconv.Atoi(old)
				}
				return strconv.Itoa(n + 1), true, nil
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	v, _, err := s.Get(ctx, "n")
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(workers), v)
}
