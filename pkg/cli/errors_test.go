package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("output", "invalid output format \"xml\"")

	expected := "invalid output: invalid output format \"xml\""
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	underlying := errors.New("file not found: rules/a.json")
	err := NewCommandError("parse", underlying)

	expected := "parse: file not found: rules/a.json"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlying) {
		t.Error("CommandError should unwrap to the underlying error")
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 1}

	var exit *ExitError
	if !errors.As(err, &exit) || exit.Code != 1 {
		t.Fatalf("errors.As(ExitError) failed: %v", err)
	}
	if err.Error() != "exit status 1" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReport bool
	}{
		{"nil", nil, 0, false},
		{"exit error", &ExitError{Code: 3}, 3, false},
		{"wrapped exit error", fmt.Errorf("run: %w", &ExitError{Code: 1}), 1, false},
		{"config error", NewConfigError("output", "bad"), ExitUsage, true},
		{"command error", NewCommandError("validate", errors.New("boom")), ExitInvalid, true},
		{"plain error", errors.New("boom"), ExitInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, report := ExitCode(tt.err)
			if code != tt.wantCode || report != tt.wantReport {
				t.Errorf("ExitCode() = %d, %v, want %d, %v", code, report, tt.wantCode, tt.wantReport)
			}
		})
	}
}
