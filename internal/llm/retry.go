package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider repeats transient failures with exponential backoff.
// Invalid responses are repeated at most once per call.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p with retry logic. With the default MaxAttempts of 1 it
// only forwards the call.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	retriedInvalid := false

	var err error
	for attempt := range attempts {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !Transient(err) || attempt == attempts-1 {
			return nil, err
		}

		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}

		timer := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait returns the pause before attempt+1. A rate limit with a RetryAfter
// hint is honored as given; otherwise the delay grows by Multiplier per
// attempt, is capped at MaxWait and gets ±20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for range attempt {
		d *= r.config.Multiplier
	}
	d = min(d, float64(r.config.MaxWait))
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(max(d, 0))
}
