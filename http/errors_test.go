package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
)

func TestErrorMessageIncludesKindAndURL(t *testing.T) {
	err := &Error{
		Kind:    KindNetwork,
		URL:     "https://example.test/x",
		Err:     errors.New("connection refused"),
		message: "request failed",
	}

	msg := err.Error()
	for _, want := range []string{"network", "https://example.test/x", "connection refused"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, expected to contain %q", msg, want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: KindRetryExhausted, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindTimeout})

	kind, ok := KindOf(err)
	if !ok || kind != KindTimeout {
		t.Errorf("KindOf() = %v, %v; want KindTimeout, true", kind, ok)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf() should not match a plain error")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "cancellation", err: context.Canceled, want: KindCancelled},
		{name: "deadline", err: context.DeadlineExceeded, want: KindTimeout},
		{name: "io deadline", err: os.ErrDeadlineExceeded, want: KindTimeout},
		{name: "net timeout", err: &net.DNSError{IsTimeout: true}, want: KindTimeout},
		{name: "dns failure", err: &net.DNSError{}, want: KindNetwork},
		{name: "plain", err: errors.New("connection reset"), want: KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHasStatusCode(t *testing.T) {
	if (&Error{}).HasStatusCode() {
		t.Error("zero status should report no status code")
	}
	if !(&Error{StatusCode: 502}).HasStatusCode() {
		t.Error("502 should report a status code")
	}
}
