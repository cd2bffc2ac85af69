package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateValid(t *testing.T) {
	file, err := Parse([]byte(sampleYAML), "client.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := file.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateNegativeValues(t *testing.T) {
	file := &File{}
	file.Client.ConnectTimeout = -1
	file.Client.MaxConnections = -1
	file.Retry.MaxAttempts = -1
	file.Retry.Delay = -1

	err := file.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if len(verrs.Errors) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(verrs.Errors), err)
	}
	if !strings.Contains(err.Error(), "4 validation errors") {
		t.Errorf("multi-error message missing count: %q", err.Error())
	}
}

func TestValidatePerRouteExceedsTotal(t *testing.T) {
	file := &File{}
	file.Client.MaxConnections = 10
	file.Client.MaxConnectionsPerRoute = 20

	err := file.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "maxConnectionsPerRoute") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateBlankHeaderName(t *testing.T) {
	file := &File{Headers: map[string]string{"  ": "v"}}

	err := file.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "header names must not be blank") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidationErrorSingleMessage(t *testing.T) {
	errs := &ValidationErrors{}
	errs.Add("client.readTimeout", "must not be negative")

	got := errs.Error()
	want := "validation error on field 'client.readTimeout': must not be negative"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
