package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A script expectation did not hold
	ExitCommandError = 2 // Bad flags, unreadable files, broker unreachable
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// response is the JSON envelope for command output.
type response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// textWriter is implemented by results that have a human-readable form.
type textWriter interface {
	writeText(w io.Writer) error
}

// writeResult writes data as a JSON envelope or as text.
func writeResult(w io.Writer, format string, data textWriter) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(response{Status: "ok", Data: data})
	}
	return data.writeText(w)
}
