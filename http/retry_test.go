package http

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetrier(enabled bool, attempts int, delay time.Duration) retrier {
	return retrier{
		enabled:     enabled,
		maxAttempts: attempts,
		delay:       delay,
		log:         zerolog.Nop(),
	}
}

// failNTimes returns an attempt function that fails n times and then
// succeeds with the given status, counting every invocation.
func failNTimes(n int, status int, calls *int) attemptFunc {
	return func(ctx context.Context) (*Response, error) {
		*calls++
		if *calls <= n {
			return nil, &Error{Kind: KindNetwork, Err: errors.New("connection refused")}
		}
		return &Response{StatusCode: status}, nil
	}
}

func TestRetrierSucceedsFirstAttempt(t *testing.T) {
	var calls int
	r := newTestRetrier(true, 3, 10*time.Millisecond)

	resp, err := r.do(context.Background(), "http://x", failNTimes(0, 200, &calls))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestRetrierSucceedsOnThirdAttempt(t *testing.T) {
	var calls int
	r := newTestRetrier(true, 3, 10*time.Millisecond)

	start := time.Now()
	resp, err := r.do(context.Background(), "http://x", failNTimes(2, 200, &calls))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 3, calls, "expected exactly 3 attempts")
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond, "expected two delays between three attempts")
}

func TestRetrierExhaustsAttempts(t *testing.T) {
	var calls int
	r := newTestRetrier(true, 2, time.Millisecond)

	resp, err := r.do(context.Background(), "http://x", failNTimes(99, 200, &calls))

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, 2, calls, "expected exactly maxAttempts attempts")

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindRetryExhausted, e.Kind)
	assert.Equal(t, "http://x", e.URL)
	// The last underlying failure is carried as the cause.
	var cause *Error
	require.ErrorAs(t, e.Err, &cause)
	assert.Equal(t, KindNetwork, cause.Kind)
}

func TestRetrierDisabledMakesOneAttempt(t *testing.T) {
	var calls int
	r := newTestRetrier(false, 5, time.Millisecond)

	_, err := r.do(context.Background(), "http://x", failNTimes(99, 200, &calls))

	require.Error(t, err)
	assert.Equal(t, 1, calls, "retry disabled must make exactly one attempt")

	// Nothing was exhausted; the underlying failure comes back as-is.
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, kind)
}

func TestRetrierClampsZeroAttempts(t *testing.T) {
	var calls int
	r := newTestRetrier(true, 0, time.Millisecond)

	_, err := r.do(context.Background(), "http://x", failNTimes(99, 200, &calls))

	require.Error(t, err)
	assert.Equal(t, 1, calls, "zero configured attempts still means one attempt")
}

func TestRetrierCancelledDuringDelay(t *testing.T) {
	var calls int
	r := newTestRetrier(true, 5, 500*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := r.do(ctx, "http://x", failNTimes(99, 200, &calls))
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, 1, calls, "cancellation during the delay must stop further attempts")
	assert.Less(t, elapsed, 400*time.Millisecond, "cancellation must abort the sleep")

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindCancelled, e.Kind, "cancellation must not be reported as RetryExhausted")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetrierDoesNotRetryCancelledAttempt(t *testing.T) {
	var calls int
	fn := func(ctx context.Context) (*Response, error) {
		calls++
		return nil, &Error{Kind: KindCancelled, Err: context.Canceled}
	}

	r := newTestRetrier(true, 5, time.Millisecond)
	_, err := r.do(context.Background(), "http://x", fn)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	kind, _ := KindOf(err)
	assert.Equal(t, KindCancelled, kind)
}

func TestRetrierDoesNotRetryUnsupportedMethod(t *testing.T) {
	var calls int
	fn := func(ctx context.Context) (*Response, error) {
		calls++
		return nil, &Error{Kind: KindUnsupportedMethod}
	}

	r := newTestRetrier(true, 5, time.Millisecond)
	_, err := r.do(context.Background(), "http://x", fn)

	require.Error(t, err)
	assert.Equal(t, 1, calls, "a programmer error must not burn retry attempts")
}

func TestRetrierHTTPErrorStatusIsNotRetried(t *testing.T) {
	var calls int
	fn := func(ctx context.Context) (*Response, error) {
		calls++
		return &Response{StatusCode: 500}, nil
	}

	r := newTestRetrier(true, 5, time.Millisecond)
	resp, err := r.do(context.Background(), "http://x", fn)

	require.NoError(t, err)
	assert.Equal(t, 1, calls, "an HTTP error status is a response, not a transport failure")
	assert.Equal(t, 500, resp.StatusCode)
}
