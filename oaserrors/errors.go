package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a $ref could not be resolved.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a chain of $ref objects that never reaches a value.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathTraversal indicates a file $ref escaping the base directory was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrUnsupportedVersion indicates a document that is not Swagger 2.0.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrRule indicates a compatibility rule failed to evaluate.
	ErrRule = errors.New("rule error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode an API description.
type ParseError struct {
	// Path is the file path, URL or source name
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref while flattening a document.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType is "local", "file" or "http"
	RefType string
	// IsCircular is true when the $ref chain loops back onto itself
	IsCircular bool
	// IsPathTraversal is true when a file $ref points outside the base directory
	IsPathTraversal bool
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	} else if e.IsPathTraversal {
		msg = "path traversal detected"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference or ErrPathTraversal
// when the corresponding flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrCircularReference:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	}
	return false
}

// VersionError reports a document whose declared format version is not supported.
type VersionError struct {
	// Path is the file path, URL or source name
	Path string
	// Version is the declared version, empty when the document declares none
	Version string
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	msg := "unsupported version"
	if e.Version != "" {
		msg += fmt.Sprintf(" %q", e.Version)
	} else {
		msg += ": missing swagger field"
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	return msg + " (only swagger 2.0 is supported)"
}

// Is reports whether target matches this error type.
func (e *VersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// ResourceLimitError represents a resource exhaustion condition while loading.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "file_size" or "cached_documents"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// RuleError wraps a failure raised while a compatibility rule was evaluated.
type RuleError struct {
	// Code is the rule code, e.g. "REQ-E001"
	Code string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *RuleError) Error() string {
	msg := "rule error"
	if e.Code != "" {
		msg += " in " + e.Code
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RuleError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RuleError) Is(target error) bool {
	return target == ErrRule
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
