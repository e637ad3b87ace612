package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/brndnsvr/remtag/internal/remdb"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (store inconsistency, backup failure)
	ExitCommandError = 2 // Command error (bad flags, store not found, unknown reminder)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// storeExitError maps an engine error to an ExitError, preserving the
// StoreError code as the CLI error text. Locator and lookup failures are
// command errors; everything else is an operation failure.
func storeExitError(op string, err error) *ExitError {
	code := ExitFailure
	switch {
	case remdb.IsDirectoryNotFound(err),
		remdb.IsNoDatabaseFound(err),
		remdb.IsReminderNotFound(err):
		code = ExitCommandError
	}
	return WrapExitError(code, op, err)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // StoreError code, e.g. "NO_DATABASE_FOUND"
	Message string `json:"message"` // human-readable message
}

// JSON outputs data as a success response. Text rendering is left to each
// command; call this only when Format is "json".
func (f *OutputFormatter) JSON(data interface{}) error {
	return json.NewEncoder(f.Writer).Encode(CLIResponse{
		Status: "ok",
		Data:   data,
	})
}

// Textf writes formatted human-readable output.
func (f *OutputFormatter) Textf(format string, args ...interface{}) {
	fmt.Fprintf(f.Writer, format+"\n", args...)
}

// VerboseLog outputs a diagnostic message only in verbose mode. Goes to
// ErrWriter so JSON output stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
