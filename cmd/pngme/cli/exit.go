// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, main
// exits with the specified code without printing the error string;
// the command is expected to have already written its own output.
//
// "pngme verify" uses this: a file with placement violations is a
// valid outcome that exits 1 after the report.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ErrorCategory classifies command errors for the exit status.
type ErrorCategory string

const (
	// CategoryValidation indicates bad input: unknown flags, missing
	// arguments, malformed chunk types, an invalid config.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced chunk or file does not
	// exist.
	CategoryNotFound ErrorCategory = "not_found"
)

// CommandError is a categorized error returned by commands.
type CommandError struct {
	Category ErrorCategory
	Err      error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Exit codes returned by [ExitCode].
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error returned by [Command.Execute] to a process
// exit status and reports whether main should print it. An
// [*ExitError] carries its own code and is silent; validation errors
// exit 2; everything else exits 1.
func ExitCode(err error) (int, bool) {
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code, false
	}
	var commandError *CommandError
	if errors.As(err, &commandError) && commandError.Category == CategoryValidation {
		return ExitUsage, true
	}
	return ExitFailure, true
}
