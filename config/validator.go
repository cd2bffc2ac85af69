package config

import (
	"fmt"
	"strings"
)

// ValidationError reports a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add appends an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any error was collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the parsed file for out-of-range values. It returns
// nil when valid, or a *ValidationErrors listing every problem found.
func (f *File) Validate() error {
	errs := &ValidationErrors{}

	if f.Client.ConnectTimeout < 0 {
		errs.Add("client.connectTimeout", "must not be negative")
	}
	if f.Client.ReadTimeout < 0 {
		errs.Add("client.readTimeout", "must not be negative")
	}
	if f.Client.MaxConnections < 0 {
		errs.Add("client.maxConnections", "must not be negative")
	}
	if f.Client.MaxConnectionsPerRoute < 0 {
		errs.Add("client.maxConnectionsPerRoute", "must not be negative")
	}
	if f.Client.MaxConnections > 0 && f.Client.MaxConnectionsPerRoute > f.Client.MaxConnections {
		errs.Add("client.maxConnectionsPerRoute", "must not exceed client.maxConnections")
	}
	if f.Retry.MaxAttempts < 0 {
		errs.Add("retry.maxAttempts", "must not be negative")
	}
	if f.Retry.Delay < 0 {
		errs.Add("retry.delay", "must not be negative")
	}
	for key := range f.Headers {
		if strings.TrimSpace(key) == "" {
			errs.Add("headers", "header names must not be blank")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
