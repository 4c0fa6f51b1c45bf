package llmclient

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Provider with a token-bucket limiter, bounding how
// often the planner is allowed to call out to a paid LLM API (spec's
// domain stack: golang.org/x/time/rate).
type RateLimited struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps inner with a limiter allowing qps requests per
// second, bursting up to qps.
func NewRateLimited(inner Provider, qps float64) *RateLimited {
	if qps <= 0 {
		qps = 1
	}
	burst := int(qps)
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{inner: inner, limiter: rate.NewLimiter(rate.Limit(qps), burst)}
}

// Name implements Provider.
func (r *RateLimited) Name() string { return r.inner.Name() }

// Complete implements Provider, blocking on the limiter before calling
// through to inner.
func (r *RateLimited) Complete(ctx context.Context, system, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Complete(ctx, system, prompt)
}
