// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"math"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// transient failures. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// RetryMaxDelay caps a single backoff wait.
var RetryMaxDelay = 30 * time.Second

const defaultMaxRetries = 3

// Backoff returns the wait before retry number attempt (zero-based). The
// delay starts at RetryBaseDelay and doubles each attempt, capped at
// RetryMaxDelay.
func Backoff(attempt int) time.Duration {
	d := float64(RetryBaseDelay) * math.Pow(2, float64(attempt))
	if d > float64(RetryMaxDelay) {
		return RetryMaxDelay
	}
	return time.Duration(d)
}

// Retry calls op until it succeeds, returns an error that retryable rejects,
// or maxRetries retries have been spent. When maxRetries is 0 the default
// (3) is used; a negative value disables retries.
//
// The last error from op is returned unchanged so callers can classify it
// with errors.Is. If the context is cancelled during a backoff wait Retry
// returns ctx.Err().
func Retry(ctx context.Context, maxRetries int, retryable func(error) bool, op func(ctx context.Context) error) error {
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt >= maxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(Backoff(attempt)):
		}
	}
}
