package kv

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "clients")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set(ctx, "clients", "[]"))
	v, ok, err := m.Get(ctx, "clients")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", v)
}

func TestMemory_SetIfAbsent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	wrote, err := m.SetIfAbsent(ctx, "initialized", "true")
	require.NoError(t, err)
	require.True(t, wrote)

	wrote, err = m.SetIfAbsent(ctx, "initialized", "false")
	require.NoError(t, err)
	require.False(t, wrote)

	v, _, _ := m.Get(ctx, "initialized")
	require.Equal(t, "true", v)
}

func TestMemory_UpdateSkipAndError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", "1"))

	err := m.Update(ctx, "k", func(old string, ok bool) (string, bool, error) {
		return "2", false, nil
	})
	require.NoError(t, err)
	v, _, _ := m.Get(ctx, "k")
	require.Equal(t, "1", v)

	boom := errors.New("boom")
	err = m.Update(ctx, "k", func(old string, ok bool) (string, bool, error) {
		return "3", true, boom
	})
	require.ErrorIs(t, err, boom)
	v, _, _ = m.Get(ctx, "k")
	require.Equal(t, "1", v)
}

func TestMemory_UpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Update(ctx, "n", func(old string, ok bool) (string, bool, error) {
				n := 0
				if ok {
					n, _ = strconv.Atoi(old)
				}
				return strconv.Itoa(n + 1), true, nil
			})
		}()
	}
	wg.Wait()

	v, _, _ := m.Get(ctx, "n")
	require.Equal(t, "50", v)
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	ns := Namespace(m, "acme")

	require.NoError(t, ns.Set(ctx, "clients", "[]"))
	wrote, err := ns.SetIfAbsent(ctx, "initialized", "true")
	require.NoError(t, err)
	require.True(t, wrote)

	for _, key := range []string{"acme:clients", "acme:initialized"} {
		_, ok, err := m.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, key)
	}
	_, ok, err := m.Get(ctx, "clients")
	require.NoError(t, err)
	require.False(t, ok)

	require.Same(t, Store(m), Namespace(m, ""))
}
