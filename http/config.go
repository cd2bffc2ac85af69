package http

import "time"

// Version is the library version reported in the default User-Agent.
const Version = "0.1.0"

// defaultUserAgent identifies the client when the caller does not
// configure or send a User-Agent of their own.
const defaultUserAgent = "httpman/" + Version

// Config holds the client settings consumed once at manager
// construction. It is passed and stored by value and never mutated
// afterwards, so a Config may be shared freely.
type Config struct {
	// ConnectTimeout bounds dialing a new connection.
	ConnectTimeout time.Duration
	// ReadTimeout bounds waiting for the response headers.
	ReadTimeout time.Duration
	// MaxConnections caps the total pooled connections.
	MaxConnections int
	// MaxConnectionsPerRoute caps pooled connections per host.
	MaxConnectionsPerRoute int
	// FollowRedirects controls redirect following for requests that do
	// not override it.
	FollowRedirects bool
	// UserAgent is sent when the request has no User-Agent header.
	UserAgent string
	// EnableRetry turns the retry loop on. When false exactly one
	// attempt is made regardless of MaxRetries.
	EnableRetry bool
	// MaxRetries is the total number of attempts, minimum 1.
	MaxRetries int
	// RetryDelay is the fixed wait between attempts. No jitter, no
	// backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns the standard client settings: generous pooling,
// redirects on, and up to three attempts one second apart.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:         10 * time.Second,
		ReadTimeout:            30 * time.Second,
		MaxConnections:         20,
		MaxConnectionsPerRoute: 10,
		FollowRedirects:        true,
		UserAgent:              defaultUserAgent,
		EnableRetry:            true,
		MaxRetries:             3,
		RetryDelay:             time.Second,
	}
}

// normalize fills zero fields from DefaultConfig and clamps MaxRetries
// to at least one total attempt.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.MaxConnections <= 0 {
		c.MaxConnections = d.MaxConnections
	}
	if c.MaxConnectionsPerRoute <= 0 {
		c.MaxConnectionsPerRoute = d.MaxConnectionsPerRoute
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = 1
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	return c
}
