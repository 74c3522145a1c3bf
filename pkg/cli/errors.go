package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the lrol binary.
const (
	// ExitInvalid means at least one rule file failed validation, or a
	// command failed at runtime.
	ExitInvalid = 1
	// ExitUsage means the command line or configuration was rejected.
	ExitUsage = 2
)

// ConfigError reports a rejected flag or configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// CommandError wraps a failure inside a subcommand.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitError ends a command with Code after the command has already reported
// the failure to the user. Execute prints nothing for it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewConfigError returns a ConfigError for field.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewCommandError wraps err with the name of the failing command.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// ExitCode maps an error returned by a command to the process exit code,
// and reports whether the error still needs to be printed.
func ExitCode(err error) (code int, report bool) {
	if err == nil {
		return 0, false
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code, false
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitUsage, true
	}
	return ExitInvalid, true
}
