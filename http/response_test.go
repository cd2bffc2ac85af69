package http

import (
	"strings"
	"testing"
	"time"
)

func TestResponseIsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		errorMsg string
		want     bool
	}{
		{name: "200 OK", status: 200, want: true},
		{name: "201 Created", status: 201, want: true},
		{name: "299 edge", status: 299, want: true},
		{name: "300 not success", status: 300, want: false},
		{name: "199 not success", status: 199, want: false},
		{name: "2xx with error message", status: 200, errorMsg: "broken", want: false},
		{name: "404", status: 404, want: false},
		{name: "zero status", status: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: tt.status, ErrorMessage: tt.errorMsg}
			if got := resp.IsSuccess(); got != tt.want {
				t.Errorf("IsSuccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponseStatusRanges(t *testing.T) {
	resp := &Response{StatusCode: 301}
	if !resp.IsRedirect() {
		t.Error("Expected 301 to be a redirect")
	}

	resp = &Response{StatusCode: 404}
	if !resp.IsClientError() {
		t.Error("Expected 404 to be a client error")
	}
	if resp.IsServerError() {
		t.Error("404 must not be a server error")
	}

	resp = &Response{StatusCode: 503}
	if !resp.IsServerError() {
		t.Error("Expected 503 to be a server error")
	}
	if resp.IsClientError() {
		t.Error("503 must not be a client error")
	}
}

func TestResponseHeader(t *testing.T) {
	resp := &Response{Headers: map[string]string{"Content-Type": "application/json"}}

	if got := resp.Header("Content-Type"); got != "application/json" {
		t.Errorf("Header() = %s, want application/json", got)
	}
	if got := resp.Header("Missing"); got != "" {
		t.Errorf("Header() for missing key = %q, want empty", got)
	}
}

func TestResponseJSON(t *testing.T) {
	resp := &Response{Body: `{"message":"success","count":3}`}

	var decoded struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	if err := resp.JSON(&decoded); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if decoded.Message != "success" || decoded.Count != 3 {
		t.Errorf("JSON() decoded %+v", decoded)
	}
}

func TestResponseElapsedMillis(t *testing.T) {
	resp := &Response{Elapsed: 1500 * time.Millisecond}
	if resp.ElapsedMillis() != 1500 {
		t.Errorf("ElapsedMillis() = %d, want 1500", resp.ElapsedMillis())
	}
}

func TestResponseStringTruncatesBody(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: strings.Repeat("x", 500)}
	s := resp.String()
	if len(s) > 200 {
		t.Errorf("String() did not truncate body: %d chars", len(s))
	}
	if !strings.Contains(s, "...") {
		t.Error("String() should mark truncated body with ellipsis")
	}
}
