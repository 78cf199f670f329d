// Package errors provides custom error types for the bimdiff system.
// These errors let callers distinguish configuration problems, per-object
// comparator failures and fatal engine state errors programmatically.
package errors

import (
	"errors"
	"fmt"
)

// New is errors.New, re-exported so callers need a single errors import.
var New = errors.New

// As is errors.As.
var As = errors.As

// Sentinels matched by the typed errors below through errors.Is.
var (
	// ErrInvalidInput marks arguments or settings that fail validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a configuration the engine cannot run with
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotSupported indicates an operation that is part of a contract but not provided
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidState indicates engine state that makes continuing unsafe
	ErrInvalidState = errors.New("invalid state")

	// ErrComparatorFailed indicates a comparator failed on a single object
	ErrComparatorFailed = errors.New("comparator failed")
)

// ValidationError reports a setting or argument outside its allowed range,
// such as a negative weight or a zero worker count.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError reports a session that cannot be set up, such as a missing
// comparator or two models whose linear units disagree.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is matches ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a ConfigError for component.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// UnsupportedError is returned by operations that exist in a contract
// but have no implementation.
type UnsupportedError struct {
	Operation string
	Component string
}

func (e *UnsupportedError) Error() string {
	if e.Component == "" {
		return e.Operation + " is not supported"
	}
	return fmt.Sprintf("%s is not supported by %s", e.Operation, e.Component)
}

// Is matches ErrNotSupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrNotSupported
}

// NewUnsupportedError creates an UnsupportedError.
func NewUnsupportedError(operation, component string) *UnsupportedError {
	return &UnsupportedError{Operation: operation, Component: component}
}

// ComparatorError records a comparator failing on one object.
// The reconciler treats it as "no candidates" and keeps going.
type ComparatorError struct {
	Comparator string
	Object     string // label of the baseline object, empty for residuals
	Err        error
}

func (e *ComparatorError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("comparator %s failed: %v", e.Comparator, e.Err)
	}
	return fmt.Sprintf("comparator %s failed on %s: %v", e.Comparator, e.Object, e.Err)
}

func (e *ComparatorError) Unwrap() error { return e.Err }

// Is matches ErrComparatorFailed.
func (e *ComparatorError) Is(target error) bool {
	return target == ErrComparatorFailed
}

// NewComparatorError creates a ComparatorError.
func NewComparatorError(comparator, object string, err error) *ComparatorError {
	return &ComparatorError{Comparator: comparator, Object: object, Err: err}
}

// StateError is fatal: the reconciliation session cannot continue.
type StateError struct {
	Component string
	Message   string
	Err       error
}

func (e *StateError) Error() string {
	if e.Component == "" {
		return "invalid state: " + e.Message
	}
	return fmt.Sprintf("invalid state in %s: %s", e.Component, e.Message)
}

func (e *StateError) Unwrap() error { return e.Err }

// Is matches ErrInvalidState.
func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

// NewStateError creates a StateError.
func NewStateError(component, message string) *StateError {
	return &StateError{Component: component, Message: message}
}

// ParseError reports a configuration or profile document that does not decode.
type ParseError struct {
	Format  string // "yaml", "env"
	File    string // empty when parsing in-memory data
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("cannot parse %s: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("cannot parse %s file %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a configuration or profile file that cannot be read.
type IOError struct {
	Operation string // "read", "open"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("cannot %s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsNotSupported reports whether err names an unsupported operation.
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}

// IsInvalidState reports whether err is fatal to the session.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsComparatorFailure reports whether err is a recoverable per-object failure.
func IsComparatorFailure(err error) bool {
	return errors.Is(err, ErrComparatorFailed)
}

// The Wrap helpers return nil for a nil err.

// WrapValidation turns err into a ValidationError for field.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapConfig turns err into a ConfigError for component.
func WrapConfig(component string, err error) error {
	if err == nil {
		return nil
	}
	return NewConfigError(component, err.Error(), err)
}

// WrapComparator turns err into a ComparatorError.
// Fatal state errors pass through unchanged.
func WrapComparator(comparator, object string, err error) error {
	if err == nil || IsInvalidState(err) {
		return err
	}
	return NewComparatorError(comparator, object, err)
}

// WrapIO records a failed file operation on path.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse records a document in format that failed to decode.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}
