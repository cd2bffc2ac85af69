package http

import "strings"

// Method represents an HTTP request method.
type Method string

// Supported HTTP methods.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// ParseMethod converts a string into a Method, ignoring case.
// It returns an UnsupportedMethod error for anything outside the
// supported set.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Supported() {
		return "", &Error{Kind: KindUnsupportedMethod, Err: nil, message: "unsupported HTTP method: " + s}
	}
	return m, nil
}

// Supported reports whether the method is in the supported set.
func (m Method) Supported() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions:
		return true
	}
	return false
}

// AllowsBody reports whether a request body is sent for this method.
// GET, DELETE, HEAD and OPTIONS requests never carry a body.
func (m Method) AllowsBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

func (m Method) String() string {
	return string(m)
}
