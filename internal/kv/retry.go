package kv

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

var errLostRace = errors.New("kv: concurrent write")

const (
	retryBase   = 2 * time.Millisecond
	retryCap    = 100 * time.Millisecond
	retryJitter = 5 * time.Millisecond
)

// RetryConflicts runs attempt until it reports done or fails. A lost race
// (done=false, err=nil) is retried with capped, jittered exponential backoff and
// counted through onConflict. Only cancellation of ctx ends the retries early.
func RetryConflicts(ctx context.Context, onConflict func(), attempt func(ctx context.Context) (bool, error)) error {
	backoff := retry.WithJitter(retryJitter, retry.WithCappedDuration(retryCap, retry.NewExponential(retryBase)))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		done, err := attempt(ctx)
		if err != nil {
			return err
		}
		if !done {
			if onConflict != nil {
				onConflict()
			}
			return retry.RetryableError(errLostRace)
		}
		return nil
	})
}
