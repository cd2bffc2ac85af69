// Package http provides a convenience layer over net/http: a single
// entry point for issuing GET/POST/PUT/DELETE requests with default
// headers, per-request timeouts, and a capped fixed-delay retry loop.
//
// Connection pooling, TLS and redirect following are delegated to the
// standard library client; this package adds the request/response value
// objects, the retry executor, and a process-wide manager facade.
//
// Basic Usage:
//
//	mgr := http.NewManager(http.DefaultConfig())
//	defer mgr.Close()
//
//	resp, err := mgr.Get(ctx, "https://api.example.com/users")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("status=%d elapsed=%dms\n", resp.StatusCode, resp.ElapsedMillis())
//
// Custom Requests:
//
//	req := http.NewRequest(http.MethodPost, "https://api.example.com/users").
//	    WithHeader("X-Request-ID", id).
//	    WithBody(`{"name":"october"}`).
//	    WithTimeout(5 * time.Second)
//
//	resp, err := mgr.Execute(ctx, req)
//
// Error Handling:
//
// An HTTP error status is not an error: a 4xx/5xx answer yields a
// Response (check IsClientError/IsServerError). An *Error is returned
// only when the request could not be completed at all; inspect its
// Kind to distinguish network failures, timeouts, exhausted retries and
// external cancellation:
//
//	resp, err := mgr.Get(ctx, url)
//	if err != nil {
//	    if kind, ok := http.KindOf(err); ok && kind == http.KindRetryExhausted {
//	        // every attempt failed; errors.Unwrap(err) is the last cause
//	    }
//	    return err
//	}
//
// Default Headers:
//
// The manager applies Content-Type, Accept and User-Agent to every
// request. Callers may add, remove or reset defaults at any time;
// per-call headers always win on collision:
//
//	mgr.AddDefaultHeader("X-API-Key", key)
package http
