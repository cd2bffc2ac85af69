package http

import (
	"encoding/json"
	"fmt"
	"time"
)

// Response represents a completed HTTP exchange. A Response is only
// returned when the server answered; transport failures are reported as
// an *Error instead, so a call never yields both.
type Response struct {
	// StatusCode is the HTTP status, 0 if never obtained.
	StatusCode int
	// Headers holds the response headers flattened to single values;
	// on duplicate header names the last value wins.
	Headers map[string]string
	// Body is the response body, empty if none was present.
	Body string
	// Elapsed is the wall time of the whole call, including retries
	// and the delays between them.
	Elapsed time.Duration
	// ErrorMessage carries a failure description on responses built
	// for reporting; it is empty on any successful exchange.
	ErrorMessage string
}

// IsSuccess reports whether the status code is in [200,300) and no
// error message is set.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300 && r.ErrorMessage == ""
}

// IsRedirect reports whether the status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError reports whether the status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError reports whether the status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// Header returns the value of the named header, or "" if absent.
func (r *Response) Header(name string) string {
	return r.Headers[name]
}

// JSON unmarshals the response body into v.
//
// The client never validates bodies itself; this is a convenience for
// callers that expect JSON.
func (r *Response) JSON(v any) error {
	return json.Unmarshal([]byte(r.Body), v)
}

// ElapsedMillis returns the elapsed time in milliseconds.
func (r *Response) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

func (r *Response) String() string {
	body := r.Body
	if len(body) > 100 {
		body = body[:100] + "..."
	}
	return fmt.Sprintf("Response{status=%d headers=%d body=%q elapsed=%dms}",
		r.StatusCode, len(r.Headers), body, r.ElapsedMillis())
}
