package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryRegistry Category = "registry"
	CategoryInstall  Category = "install"
	CategoryCLI      Category = "cli"
)

// QuickError is a structured error with a code, explanation and fix hint.
type QuickError struct {
	// Code is a unique error identifier (e.g., "E110").
	Code string

	// Category is the error type (config, registry, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this particular occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *QuickError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *QuickError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a QuickError with the same code.
func (e *QuickError) Is(target error) bool {
	t, ok := target.(*QuickError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *QuickError) WithSuggestion(s string) *QuickError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *QuickError) WithDetail(d string) *QuickError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with fmt.Sprintf formatting.
func (e *QuickError) WithDetailf(format string, args ...any) *QuickError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *QuickError) Wrap(err error) *QuickError {
	e.Wrapped = err
	return e
}

// New creates a QuickError from a registered error code.
func New(code string) *QuickError {
	template, ok := registry[code]
	if !ok {
		return &QuickError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &QuickError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new QuickError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *QuickError {
	return &QuickError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a QuickError.
func FromError(err error, code string) *QuickError {
	if err == nil {
		return nil
	}
	if qe, ok := err.(*QuickError); ok {
		return qe
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, is a QuickError with
// the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if qe, ok := err.(*QuickError); ok && qe.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
