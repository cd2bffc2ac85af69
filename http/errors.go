package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
)

// Kind classifies the ways a request can fail without producing a
// response. An HTTP error status (4xx/5xx) is not an Error: it is
// reported through Response.StatusCode.
type Kind int

const (
	// KindNetwork covers connection and I/O failures (refused
	// connections, DNS failures, broken reads).
	KindNetwork Kind = iota
	// KindTimeout covers connect or read timeouts.
	KindTimeout
	// KindUnsupportedMethod is a programmer error: the request method
	// is outside the supported set. No network call is attempted.
	KindUnsupportedMethod
	// KindRetryExhausted means every attempt failed; the Error wraps
	// the last underlying failure.
	KindRetryExhausted
	// KindCancelled means the operation was aborted externally, either
	// mid-flight or while waiting between attempts.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindUnsupportedMethod:
		return "unsupported method"
	case KindRetryExhausted:
		return "retry exhausted"
	case KindCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Error is the failure value returned by the client. StatusCode and URL
// are optional context and may be zero-valued.
type Error struct {
	Kind       Kind
	StatusCode int
	URL        string
	Err        error
	message    string
}

func (e *Error) Error() string {
	msg := e.message
	if msg == "" {
		msg = "request failed"
	}
	switch {
	case e.URL != "" && e.Err != nil:
		return fmt.Sprintf("httpman: %s (%s): %s: %v", msg, e.Kind, e.URL, e.Err)
	case e.URL != "":
		return fmt.Sprintf("httpman: %s (%s): %s", msg, e.Kind, e.URL)
	case e.Err != nil:
		return fmt.Sprintf("httpman: %s (%s): %v", msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("httpman: %s (%s)", msg, e.Kind)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// HasStatusCode reports whether a status code was captured before the
// request failed.
func (e *Error) HasStatusCode() bool {
	return e.StatusCode > 0
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and ok
// reporting whether it was one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// classify maps a transport-level failure onto the error taxonomy.
// Cancellation is kept distinct from timeouts so the retry executor
// never masks an external abort as a transient failure.
func classify(err error) Kind {
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// transportError wraps a net/http failure into an *Error, unwrapping
// *url.Error so callers see the real cause.
func transportError(reqURL string, err error) *Error {
	cause := err
	var ue *url.Error
	if errors.As(err, &ue) {
		cause = ue.Err
	}
	return &Error{
		Kind:    classify(cause),
		URL:     reqURL,
		Err:     cause,
		message: "request failed",
	}
}
