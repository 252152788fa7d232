// Package errors provides standardized error types and helpers for the Ecoji codec.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for common cases
var (
	// ErrInvalidData indicates input that is not valid Ecoji text
	ErrInvalidData = errors.New("invalid data")
	// ErrUnexpectedEOF indicates the input ended in the middle of a symbol group
	ErrUnexpectedEOF = errors.New("unexpected end of data")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or alphabet version
	ErrUnsupported = errors.New("unsupported")
)

// InvalidSymbolError reports a code point that belongs to neither alphabet version.
type InvalidSymbolError struct {
	Symbol rune  // Offending code point
	Offset int64 // Byte offset of the code point in the source
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("input character '%c' (U+%04X) at byte %d is not a part of the Ecoji alphabet",
		e.Symbol, e.Symbol, e.Offset)
}

func (e *InvalidSymbolError) Unwrap() error {
	return ErrInvalidData
}

// InvalidEncodingError reports a malformed UTF-8 sequence in the source.
type InvalidEncodingError struct {
	Offset int64 // Byte offset of the first invalid byte
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence at byte %d", e.Offset)
}

func (e *InvalidEncodingError) Unwrap() error {
	return ErrInvalidData
}

// TruncatedGroupError reports a final symbol group that is short and not
// terminated by padding.
type TruncatedGroupError struct {
	Count int // Number of code points read into the final group
}

func (e *TruncatedGroupError) Error() string {
	return fmt.Sprintf("unexpected end of data after %d of 4 code points, input code points count is not a multiple of 4", e.Count)
}

// Unwrap matches both ErrUnexpectedEOF and io.ErrUnexpectedEOF.
func (e *TruncatedGroupError) Unwrap() []error {
	return []error{ErrUnexpectedEOF, io.ErrUnexpectedEOF}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error in an alphabet table or config file
type ParseError struct {
	Format  string // Format being parsed (e.g., "alphabet table", "config")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported feature or alphabet version
type UnsupportedError struct {
	Feature string // Feature that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewInvalidSymbol creates an InvalidSymbolError
func NewInvalidSymbol(symbol rune, offset int64) *InvalidSymbolError {
	return &InvalidSymbolError{
		Symbol: symbol,
		Offset: offset,
	}
}

// NewInvalidEncoding creates an InvalidEncodingError
func NewInvalidEncoding(offset int64) *InvalidEncodingError {
	return &InvalidEncodingError{Offset: offset}
}

// NewTruncatedGroup creates a TruncatedGroupError
func NewTruncatedGroup(count int) *TruncatedGroupError {
	return &TruncatedGroupError{Count: count}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
