package cli

import (
	"errors"
	"fmt"
	"io"
)

// Process exit statuses.
const (
	ExitSuccess      = 0 // Every case passed, every plan valid
	ExitFailure      = 1 // A case failed, a plan is invalid, or the report differs from the golden file
	ExitCommandError = 2 // Command error (bad arguments, unreadable files, etc.)
)

// Error codes printed with diagnostics.
const (
	ErrCodeNotFound    = "E001" // plan or golden file missing, or no suite matched --suite
	ErrCodeInvalidPlan = "E002" // plan failed to load or validate
	ErrCodeGolden      = "E003" // golden file mismatch or write failure
	ErrCodeOutput      = "E004" // report could not be written
)

// ExitError carries the process exit status for a command failure.
//
// Commands return ExitFailure when the run itself produced a bad outcome
// (failed cases, invalid plans, golden drift) and ExitCommandError when the
// command could not do its job at all.
type ExitError struct {
	Code    int
	Message string
	Err     error // cause, if any
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError caused by err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps a command error to a process exit status.
// Errors that are not ExitErrors come from cobra (unknown command, wrong
// argument count) and count as command errors.
func GetExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		return ExitCommandError
	}
}

// OutputFormatter writes the CLI's own messages. The test report is never
// written through it: stdout carries the report byte for byte, so every
// diagnostic goes to ErrWriter.
type OutputFormatter struct {
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostics (defaults to Writer)
	Verbose   bool
}

// Success prints a line to Writer.
func (f *OutputFormatter) Success(format string, args ...any) {
	fmt.Fprintf(f.Writer, format+"\n", args...)
}

// Error prints a coded diagnostic to ErrWriter.
func (f *OutputFormatter) Error(code, message string) {
	fmt.Fprintf(f.GetErrWriter(), "Error [%s]: %s\n", code, message)
}

// VerboseLog prints to ErrWriter when -v is set.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter, or Writer when none is set.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
