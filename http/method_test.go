package http

import (
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Method
		wantErr bool
	}{
		{name: "Uppercase", input: "GET", want: MethodGet},
		{name: "Lowercase", input: "post", want: MethodPost},
		{name: "Mixed case with spaces", input: "  Delete ", want: MethodDelete},
		{name: "Patch", input: "PATCH", want: MethodPatch},
		{name: "Head", input: "head", want: MethodHead},
		{name: "Options", input: "OPTIONS", want: MethodOptions},
		{name: "Unsupported", input: "TRACE", wantErr: true},
		{name: "Garbage", input: "not-a-method", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMethod(%q) expected error, got %v", tt.input, got)
				}
				kind, ok := KindOf(err)
				if !ok || kind != KindUnsupportedMethod {
					t.Errorf("ParseMethod(%q) error kind = %v, want KindUnsupportedMethod", tt.input, kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMethodAllowsBody(t *testing.T) {
	withBody := []Method{MethodPost, MethodPut, MethodPatch}
	for _, m := range withBody {
		if !m.AllowsBody() {
			t.Errorf("%s.AllowsBody() = false, want true", m)
		}
	}

	withoutBody := []Method{MethodGet, MethodDelete, MethodHead, MethodOptions}
	for _, m := range withoutBody {
		if m.AllowsBody() {
			t.Errorf("%s.AllowsBody() = true, want false", m)
		}
	}
}
