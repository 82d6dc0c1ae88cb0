package avrocompat

import (
	"errors"
	"fmt"
)

// Standard sentinel errors.
var (
	// ErrUnsupported is returned when the selected release lacks a capability,
	// for example when its code generator is not installed. It is never
	// wrapped by this module.
	ErrUnsupported = errors.New("avrocompat: unsupported operation")

	// ErrInternalState is returned for failures that indicate a programming
	// or environment error: a generator bridge whose shape differs from what
	// is expected, unextractable output, or generated source that violates a
	// patch pass's assumptions.
	ErrInternalState = errors.New("avrocompat: internal state error")

	// ErrInvalidValue is returned when a value does not fit its schema.
	ErrInvalidValue = errors.New("avrocompat: invalid value")
)

// UnsupportedError reports a capability the selected release does not have.
type UnsupportedError struct {
	Release Version
	Op      string // Operation, e.g. "compile"
	Reason  string
}

// Error returns the error string.
func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("avrocompat: %s unsupported by avro %s: %s", e.Op, e.Release, e.Reason)
	}
	return fmt.Sprintf("avrocompat: %s unsupported by avro %s", e.Op, e.Release)
}

// Is reports whether the target error matches UnsupportedError.
// This allows errors.Is(err, ErrUnsupported) to return true.
func (e *UnsupportedError) Is(err error) bool {
	return err == ErrUnsupported
}

// NewUnsupportedError returns a new UnsupportedError.
func NewUnsupportedError(release Version, op, reason string) *UnsupportedError {
	return &UnsupportedError{Release: release, Op: op, Reason: reason}
}

// IsUnsupported returns true if the error is an UnsupportedError.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// InternalError wraps any non-recoverable failure of an operation.
type InternalError struct {
	Op  string // Operation, e.g. "compile"
	Err error  // Underlying error
}

// Error returns the error string.
func (e *InternalError) Error() string {
	return fmt.Sprintf("avrocompat: %s: internal state error: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches InternalError.
func (e *InternalError) Is(err error) bool {
	return err == ErrInternalState
}

// NewInternalError returns a new InternalError.
func NewInternalError(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

// IsInternal returns true if the error is an InternalError.
func IsInternal(err error) bool {
	if err == nil {
		return false
	}
	var e *InternalError
	return errors.As(err, &e)
}

// ValidationError reports a value that does not fit its schema.
type ValidationError struct {
	Schema string // Full name of the schema
	Err    error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("avrocompat: invalid value for %q: %s", e.Schema, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ValidationError.
func (e *ValidationError) Is(err error) bool {
	return err == ErrInvalidValue
}

// NewValidationError returns a new ValidationError for the given schema.
func NewValidationError(schema string, err error) *ValidationError {
	return &ValidationError{Schema: schema, Err: err}
}

// SchemaError wraps a schema parse failure.
type SchemaError struct {
	Name string // Schema name or file, if known
	Err  error
}

// Error returns the error string.
func (e *SchemaError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("avrocompat: parsing schema %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("avrocompat: parsing schema: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewSchemaError returns a new SchemaError.
func NewSchemaError(name string, err error) *SchemaError {
	return &SchemaError{Name: name, Err: err}
}
