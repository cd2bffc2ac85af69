// Package config loads client configuration files for the httpman CLI.
//
// Files may be YAML or JSON, selected by extension. Durations are
// written as strings ("10s", "1m30s").
//
// Example YAML:
//
//	client:
//	  connectTimeout: 10s
//	  readTimeout: 30s
//	  maxConnections: 20
//	  maxConnectionsPerRoute: 10
//	  followRedirects: true
//	  userAgent: "my-service/1.0"
//	retry:
//	  enabled: true
//	  maxAttempts: 3
//	  delay: 1s
//	headers:
//	  X-API-Key: "k1"
package config

import (
	"time"

	"github.com/fourteendev/httpman/http"
)

// File is the root of a client configuration file.
type File struct {
	Client  ClientConfig      `json:"client,omitempty" yaml:"client,omitempty"`
	Retry   RetryConfig       `json:"retry,omitempty" yaml:"retry,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// ClientConfig mirrors the transport-level settings of http.Config.
type ClientConfig struct {
	ConnectTimeout         Duration `json:"connectTimeout,omitempty" yaml:"connectTimeout,omitempty"`
	ReadTimeout            Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	MaxConnections         int      `json:"maxConnections,omitempty" yaml:"maxConnections,omitempty"`
	MaxConnectionsPerRoute int      `json:"maxConnectionsPerRoute,omitempty" yaml:"maxConnectionsPerRoute,omitempty"`
	FollowRedirects        *bool    `json:"followRedirects,omitempty" yaml:"followRedirects,omitempty"`
	UserAgent              string   `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
}

// RetryConfig mirrors the retry settings of http.Config. MaxAttempts
// counts total attempts, minimum 1.
type RetryConfig struct {
	Enabled     *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	MaxAttempts int      `json:"maxAttempts,omitempty" yaml:"maxAttempts,omitempty"`
	Delay       Duration `json:"delay,omitempty" yaml:"delay,omitempty"`
}

// ToConfig converts the file into an http.Config, falling back to
// http.DefaultConfig for anything left unset.
func (f *File) ToConfig() http.Config {
	cfg := http.DefaultConfig()
	if d := time.Duration(f.Client.ConnectTimeout); d > 0 {
		cfg.ConnectTimeout = d
	}
	if d := time.Duration(f.Client.ReadTimeout); d > 0 {
		cfg.ReadTimeout = d
	}
	if f.Client.MaxConnections > 0 {
		cfg.MaxConnections = f.Client.MaxConnections
	}
	if f.Client.MaxConnectionsPerRoute > 0 {
		cfg.MaxConnectionsPerRoute = f.Client.MaxConnectionsPerRoute
	}
	if f.Client.FollowRedirects != nil {
		cfg.FollowRedirects = *f.Client.FollowRedirects
	}
	if f.Client.UserAgent != "" {
		cfg.UserAgent = f.Client.UserAgent
	}
	if f.Retry.Enabled != nil {
		cfg.EnableRetry = *f.Retry.Enabled
	}
	if f.Retry.MaxAttempts > 0 {
		cfg.MaxRetries = f.Retry.MaxAttempts
	}
	if d := time.Duration(f.Retry.Delay); d > 0 {
		cfg.RetryDelay = d
	}
	return cfg
}

// Duration is a time.Duration that marshals as a string ("30s").
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return d.parse(s)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}
