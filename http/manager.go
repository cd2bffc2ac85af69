package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fourteendev/httpman/stats"
)

// ErrClosed is returned by every call issued after Close.
var ErrClosed = errors.New("httpman: manager is closed")

// Manager is the single entry point for issuing requests. It owns the
// default headers merged into every outgoing request, the pooled
// transport, and the retry executor.
//
// Manager is safe for concurrent use by multiple goroutines, including
// concurrent default-header mutation while requests are in flight.
type Manager struct {
	config    Config
	transport *Transport
	retry     retrier
	log       zerolog.Logger
	recorder  *stats.Recorder

	mu             sync.RWMutex
	defaultHeaders map[string]string

	closeOnce sync.Once
	closed    chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. The default discards all
// output.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithRecorder attaches a stats recorder fed with the outcome of every
// call.
func WithRecorder(r *stats.Recorder) Option {
	return func(m *Manager) {
		m.recorder = r
	}
}

// NewManager creates a manager from the given config. Zero fields fall
// back to DefaultConfig values, and MaxRetries is clamped to at least
// one total attempt.
func NewManager(cfg Config, opts ...Option) *Manager {
	cfg = cfg.normalize()
	m := &Manager{
		config:         cfg,
		transport:      NewTransport(cfg),
		log:            zerolog.Nop(),
		defaultHeaders: make(map[string]string),
		closed:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.retry = newRetrier(cfg, m.log)
	m.initDefaultHeaders()
	return m
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns a process-wide manager built from DefaultConfig,
// created on first use. Applications that need custom configuration
// should construct their own Manager with NewManager and inject it;
// Default deliberately takes no config so a later caller can never be
// silently ignored.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager(DefaultConfig())
	})
	return defaultManager
}

func (m *Manager) initDefaultHeaders() {
	m.defaultHeaders["Content-Type"] = "application/json"
	m.defaultHeaders["Accept"] = "application/json"
	m.defaultHeaders["User-Agent"] = m.config.UserAgent
}

// AddDefaultHeader sets a header included in all subsequent requests
// unless the caller overrides it per call.
func (m *Manager) AddDefaultHeader(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultHeaders[key] = value
}

// RemoveDefaultHeader removes a default header.
func (m *Manager) RemoveDefaultHeader(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.defaultHeaders, key)
}

// ClearDefaultHeaders resets the default headers to the initial
// Content-Type, Accept and User-Agent set.
func (m *Manager) ClearDefaultHeaders() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultHeaders = make(map[string]string)
	m.initDefaultHeaders()
}

// DefaultHeaders returns a snapshot of the current default headers.
func (m *Manager) DefaultHeaders() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := make(map[string]string, len(m.defaultHeaders))
	for key, value := range m.defaultHeaders {
		snapshot[key] = value
	}
	return snapshot
}

// Config returns a copy of the effective configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Get issues a GET request to the given URL.
func (m *Manager) Get(ctx context.Context, url string) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodGet, url))
}

// GetWithHeaders issues a GET request with additional headers.
func (m *Manager) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodGet, url).WithHeaders(headers))
}

// Post issues a POST request with the given JSON body.
func (m *Manager) Post(ctx context.Context, url, body string) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodPost, url).WithBody(body))
}

// PostWithHeaders issues a POST request with body and additional
// headers.
func (m *Manager) PostWithHeaders(ctx context.Context, url, body string, headers map[string]string) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodPost, url).WithBody(body).WithHeaders(headers))
}

// PostJSON marshals v and issues it as a POST body.
func (m *Manager) PostJSON(ctx context.Context, url string, v any) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodPost, url).WithJSONBody(v))
}

// Put issues a PUT request with the given JSON body.
func (m *Manager) Put(ctx context.Context, url, body string) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodPut, url).WithBody(body))
}

// PutJSON marshals v and issues it as a PUT body.
func (m *Manager) PutJSON(ctx context.Context, url string, v any) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodPut, url).WithJSONBody(v))
}

// Delete issues a DELETE request to the given URL.
func (m *Manager) Delete(ctx context.Context, url string) (*Response, error) {
	return m.Execute(ctx, m.newRequest(MethodDelete, url))
}

// SendAPIRequest issues a request with a bearer token. The
// Authorization header is injected only when token is non-empty.
func (m *Manager) SendAPIRequest(ctx context.Context, url string, method Method, body, token string) (*Response, error) {
	req := m.newRequest(method, url).WithBody(body)
	if token != "" {
		req.WithHeader("Authorization", "Bearer "+token)
	}
	return m.Execute(ctx, req)
}

// SendAPIRequestJSON is SendAPIRequest with a marshalled JSON body.
// A nil v sends no body.
func (m *Manager) SendAPIRequestJSON(ctx context.Context, url string, method Method, v any, token string) (*Response, error) {
	req := m.newRequest(method, url)
	if v != nil {
		req.WithJSONBody(v)
	}
	if token != "" {
		req.WithHeader("Authorization", "Bearer "+token)
	}
	return m.Execute(ctx, req)
}

// Execute merges the default headers into the request (per-call headers
// win on collision) and dispatches it through the retry executor. It
// returns either a fully populated Response or an error, never both.
func (m *Manager) Execute(ctx context.Context, req *Request) (*Response, error) {
	select {
	case <-m.closed:
		return nil, ErrClosed
	default:
	}

	if req == nil {
		return nil, errors.New("httpman: nil request")
	}
	if req.buildErr != nil {
		return nil, req.buildErr
	}
	if req.URL == "" {
		return nil, errors.New("httpman: request URL must not be empty")
	}

	final := req.clone()
	final.Headers = m.mergeHeaders(req.Headers)

	m.log.Debug().
		Str("method", string(final.Method)).
		Str("url", final.URL).
		Msg("sending request")

	start := time.Now()
	resp, err := m.retry.do(ctx, final.URL, func(ctx context.Context) (*Response, error) {
		return m.transport.RoundTrip(ctx, final)
	})
	elapsed := time.Since(start)

	if m.recorder != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		m.recorder.Record(string(final.Method), status, elapsed, err != nil)
	}

	if err != nil {
		m.log.Debug().
			Str("method", string(final.Method)).
			Str("url", final.URL).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("request failed")
		return nil, err
	}

	resp.Elapsed = elapsed
	m.log.Debug().
		Str("method", string(final.Method)).
		Str("url", final.URL).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request completed")
	return resp, nil
}

// Close releases the transport's pooled connections. It is idempotent;
// any call issued after Close fails with ErrClosed.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.closed)
		m.transport.Close()
		m.log.Info().Msg("closing HTTP manager")
	})
}

// newRequest builds a verb request seeded with the config-level
// redirect policy and read timeout.
func (m *Manager) newRequest(method Method, url string) *Request {
	return NewRequest(method, url).
		WithTimeout(m.config.ReadTimeout).
		WithFollowRedirects(m.config.FollowRedirects)
}

// mergeHeaders overlays per-call headers on a snapshot of the default
// headers; the per-call value wins on any collision.
func (m *Manager) mergeHeaders(headers map[string]string) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	merged := make(map[string]string, len(m.defaultHeaders)+len(headers))
	for key, value := range m.defaultHeaders {
		merged[key] = value
	}
	for key, value := range headers {
		merged[key] = value
	}
	return merged
}
