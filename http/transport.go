package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
)

// Transport translates one Request into one outbound call against a
// pooled net/http client. It performs no retries of its own; that is
// the retry executor's job.
//
// Transport is safe for concurrent use by multiple goroutines.
type Transport struct {
	client     *http.Client
	noRedirect *http.Client
	userAgent  string
}

// NewTransport builds a transport from the given config. Connection
// pooling, TLS and redirect following are delegated to net/http.
func NewTransport(cfg Config) *Transport {
	pooled := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConns:          cfg.MaxConnections,
		MaxIdleConnsPerHost:   cfg.MaxConnectionsPerRoute,
		MaxConnsPerHost:       cfg.MaxConnections,
	}

	// Both clients share the connection pool; only the redirect policy
	// differs. The request's FollowRedirects flag picks between them.
	return &Transport{
		client:     &http.Client{Transport: pooled},
		noRedirect: &http.Client{Transport: pooled, CheckRedirect: noFollow},
		userAgent:  cfg.UserAgent,
	}
}

func noFollow(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

// RoundTrip executes a single attempt of the request and converts the
// result. Elapsed time is not set here; the manager measures the whole
// call including retries.
func (t *Transport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	if !req.Method.Supported() {
		return nil, &Error{
			Kind:    KindUnsupportedMethod,
			URL:     req.URL,
			message: "unsupported HTTP method: " + string(req.Method),
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if req.Body != "" && req.Method.AllowsBody() {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.fullURL(), body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: req.URL, Err: err, message: "build request"}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	client := t.client
	if !req.FollowRedirects {
		client = t.noRedirect
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, transportError(req.URL, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, transportError(req.URL, err)
	}

	// Flatten multi-value headers; last value wins on duplicates.
	headers := make(map[string]string, len(httpResp.Header))
	for name, values := range httpResp.Header {
		if len(values) > 0 {
			headers[name] = values[len(values)-1]
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    headers,
		Body:       string(respBody),
	}, nil
}

// Close releases idle pooled connections.
func (t *Transport) Close() {
	if tr, ok := t.client.Transport.(*http.Transport); ok {
		tr.CloseIdleConnections()
	}
}
