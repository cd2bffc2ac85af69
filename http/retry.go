package http

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// attemptFunc performs a single request attempt.
type attemptFunc func(ctx context.Context) (*Response, error)

// retrier invokes an attempt up to a fixed number of times with a
// constant delay between attempts, short-circuiting on the first
// success. MaxRetries counts total attempts, minimum one.
type retrier struct {
	enabled     bool
	maxAttempts int
	delay       time.Duration
	log         zerolog.Logger
}

func newRetrier(cfg Config, log zerolog.Logger) retrier {
	return retrier{
		enabled:     cfg.EnableRetry,
		maxAttempts: cfg.MaxRetries,
		delay:       cfg.RetryDelay,
		log:         log,
	}
}

// do runs fn until it succeeds or attempts are exhausted. The delay
// between attempts is cancellable: an aborted wait surfaces as
// KindCancelled, never as a retry failure. Cancelled attempts are not
// retried either.
func (r retrier) do(ctx context.Context, url string, fn attemptFunc) (*Response, error) {
	attempts := r.maxAttempts
	if !r.enabled || attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(r.delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, &Error{
					Kind:    KindCancelled,
					URL:     url,
					Err:     ctx.Err(),
					message: "aborted while waiting to retry",
				}
			}
		}

		resp, err := fn(ctx)
		if err == nil {
			return resp, nil
		}
		if kind, ok := KindOf(err); ok {
			switch kind {
			case KindCancelled, KindUnsupportedMethod:
				return nil, err
			}
		}
		lastErr = err

		if attempt < attempts {
			r.log.Warn().
				Str("url", url).
				Int("attempt", attempt).
				Int("max_attempts", attempts).
				Err(err).
				Msg("request attempt failed, retrying")
		}
	}

	if !r.enabled {
		// A single attempt with retry disabled has nothing to exhaust;
		// the underlying failure is returned as-is.
		return nil, lastErr
	}
	return nil, &Error{
		Kind:    KindRetryExhausted,
		URL:     url,
		Err:     lastErr,
		message: "request failed after all attempts",
	}
}
