package http

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// DefaultRequestTimeout applies when a request does not set its own.
const DefaultRequestTimeout = 30 * time.Second

// Request represents an HTTP request under construction. The builder
// methods mutate and return the same instance for chaining; once the
// request is handed to Execute it is copied and treated as a value.
type Request struct {
	Method          Method
	URL             string
	Headers         map[string]string
	QueryParams     url.Values
	Body            string
	Timeout         time.Duration
	FollowRedirects bool

	buildErr error
}

// NewRequest creates a request with the default timeout and redirect
// following enabled.
func NewRequest(method Method, rawURL string) *Request {
	return &Request{
		Method:          method,
		URL:             rawURL,
		Headers:         make(map[string]string),
		QueryParams:     make(url.Values),
		Timeout:         DefaultRequestTimeout,
		FollowRedirects: true,
	}
}

// WithHeader adds a header to the request.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithHeaders adds multiple headers to the request.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.Headers[key] = value
	}
	return r
}

// WithQueryParam adds a query parameter to the request URL.
func (r *Request) WithQueryParam(key, value string) *Request {
	r.QueryParams.Add(key, value)
	return r
}

// WithBody sets the request body. The body is passed through as an
// opaque string; by convention it is JSON.
func (r *Request) WithBody(body string) *Request {
	r.Body = body
	return r
}

// WithJSONBody marshals v and sets it as the request body.
func (r *Request) WithJSONBody(v any) *Request {
	b, err := json.Marshal(v)
	if err != nil {
		// Surface at execute time rather than swallowing mid-chain.
		r.buildErr = fmt.Errorf("marshal request body: %w", err)
		return r
	}
	r.Body = string(b)
	return r
}

// WithTimeout sets the per-request timeout, overriding the config
// default.
func (r *Request) WithTimeout(d time.Duration) *Request {
	r.Timeout = d
	return r
}

// WithFollowRedirects overrides the client redirect policy for this
// request.
func (r *Request) WithFollowRedirects(follow bool) *Request {
	r.FollowRedirects = follow
	return r
}

// fullURL returns the request URL with query parameters appended.
func (r *Request) fullURL() string {
	if len(r.QueryParams) == 0 {
		return r.URL
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return r.URL
	}
	q := u.Query()
	for key, values := range r.QueryParams {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// clone returns a copy with its own header map, so merging defaults
// never mutates the caller's request.
func (r *Request) clone() *Request {
	c := *r
	c.Headers = make(map[string]string, len(r.Headers))
	for key, value := range r.Headers {
		c.Headers[key] = value
	}
	c.QueryParams = make(url.Values, len(r.QueryParams))
	for key, values := range r.QueryParams {
		c.QueryParams[key] = append([]string(nil), values...)
	}
	return &c
}

func (r *Request) String() string {
	return fmt.Sprintf("Request{%s %s headers=%d body=%dB timeout=%s}",
		r.Method, r.URL, len(r.Headers), len(r.Body), r.Timeout)
}
