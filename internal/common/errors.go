// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Record errors.
	ErrInvalidField = errors.New("invalid field value")
	ErrUnknownField = errors.New("unknown field")

	// Call log errors.
	ErrFileFormat        = errors.New("malformed call log file")
	ErrIO                = errors.New("call log i/o failed")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrDirectoryNotFound = errors.New("directory not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FieldError reports a problem with a single named field of a call.
type FieldError struct {
	Err   error
	Field string
	Value string
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FileError reports a failed operation on a call log file. Kind is the
// sentinel classifying the failure (ErrFileFormat or ErrIO) and Err the cause.
type FileError struct {
	Kind error
	Err  error
	Op   string
	Path string
	Line int
}

func (e *FileError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, e.Path)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d", msg, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", msg, e.Kind)
}

func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewFormatError creates a FileError classified as ErrFileFormat.
func NewFormatError(path string, line int, err error) error {
	return &FileError{Kind: ErrFileFormat, Op: "parse", Path: path, Line: line, Err: err}
}

// NewIOError creates a FileError classified as ErrIO.
func NewIOError(op, path string, err error) error {
	return &FileError{Kind: ErrIO, Op: op, Path: path, Err: err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
