package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryConflicts_RetriesUntilDone(t *testing.T) {
	conflicts, calls := 0, 0
	err := RetryConflicts(context.Background(), func() { conflicts++ }, func(context.Context) (bool, error) {
		calls++
		return calls == 12, nil
	})
	require.NoError(t, err)
	require.Equal(t, 12, calls)
	require.Equal(t, 11, conflicts)
}

func TestRetryConflicts_ErrorStopsImmediately(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := RetryConflicts(context.Background(), nil, func(context.Context) (bool, error) {
		calls++
		return false, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestRetryConflicts_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := RetryConflicts(ctx, nil, func(context.Context) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
