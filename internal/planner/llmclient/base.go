package llmclient

import (
	"context"
	"time"
)

// BaseProvider holds the retry policy shared by every backend, adapted
// directly from the teacher's providers.BaseProvider linear-backoff
// retry wrapper.
type BaseProvider struct {
	maxRetries int
	retryDelay time.Duration
}

// NewBaseProvider builds a BaseProvider with sane defaults when given
// zero values.
func NewBaseProvider(maxRetries int, retryDelay time.Duration) BaseProvider {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return BaseProvider{maxRetries: maxRetries, retryDelay: retryDelay}
}

// Retry runs op with linear backoff, attempt*retryDelay between tries,
// stopping early when isRetryable reports false for the latest error.
func (b *BaseProvider) Retry(ctx context.Context, isRetryable func(error) bool, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= b.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := op(); err == nil {
			return nil
		} else {
			lastErr = err
			if isRetryable == nil || !isRetryable(err) {
				return err
			}
			if attempt >= b.maxRetries {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.retryDelay * time.Duration(attempt)):
			}
		}
	}
	return lastErr
}
