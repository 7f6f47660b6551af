package llm

import (
	"context"
	"errors"
	"iter"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with jittered exponential
// backoff. An invalid structured response is retried once per call.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, config: cfg}
}

// retryBudget tracks per-call retry state.
type retryBudget struct {
	invalidUsed bool
}

func (b *retryBudget) allows(err error) bool {
	var maxTok *ErrMaxTokensExceeded
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.As(err, &maxTok):
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if b.invalidUsed {
			return false
		}
		b.invalidUsed = true
	}
	// Rate limits, outages and unclassified transport errors all retry.
	return true
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var budget retryBudget
	var err error
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}
		if !budget.allows(err) || attempt == r.config.MaxAttempts-1 {
			return nil, err
		}
		if werr := r.sleep(ctx, attempt, err); werr != nil {
			return nil, werr
		}
	}
	return nil, err
}

// GenerateStream retries only until the first fragment is yielded. Later
// failures pass through so the consumer never sees repeated text.
func (r *RetryProvider) GenerateStream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var budget retryBudget
		for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
			emitted := false
			var failure error
			for chunk, err := range r.inner.GenerateStream(ctx, req) {
				if err != nil {
					failure = err
					break
				}
				emitted = true
				if !yield(chunk, nil) {
					return
				}
			}

			switch {
			case failure == nil:
				return
			case emitted, !budget.allows(failure), attempt == r.config.MaxAttempts-1:
				yield("", failure)
				return
			}
			if err := r.sleep(ctx, attempt, failure); err != nil {
				yield("", err)
				return
			}
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetryProvider) sleep(ctx context.Context, attempt int, cause error) error {
	t := time.NewTimer(r.backoff(attempt, cause))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// backoff is InitialWait*Multiplier^attempt capped at MaxWait, with ±20%
// jitter. A rate limit's RetryAfter wins when set.
func (r *RetryProvider) backoff(attempt int, cause error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(cause, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := math.Min(
		float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)),
		float64(r.config.MaxWait),
	)
	return time.Duration(max(0, base*(0.8+0.4*rand.Float64())))
}
