package simplecms

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Error types
var (
	// ErrNotFound indicates a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the current user lacks a permission
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidArgument indicates an argument is malformed or conflicts with existing data
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBadState indicates the entity is not in a state that allows the operation
	ErrBadState = errors.New("bad state")

	// ErrNotImplemented indicates a feature or criterion has no handler
	ErrNotImplemented = errors.New("not implemented")

	// ErrContentValidation indicates field values failed validation
	ErrContentValidation = errors.New("content field validation failed")
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	What       string
	Identifier any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find '%s' with identifier '%v'", e.What, e.Identifier)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// UnauthorizedError reports a failed permission check.
type UnauthorizedError struct {
	Module     string
	Function   string
	Properties map[string]any
}

func (e *UnauthorizedError) Error() string {
	msg := fmt.Sprintf("user does not have access to '%s' '%s'", e.Function, e.Module)
	if len(e.Properties) == 0 {
		return msg
	}
	parts := make([]string, 0, len(e.Properties))
	for _, k := range slices.Sorted(maps.Keys(e.Properties)) {
		parts = append(parts, fmt.Sprintf("%s '%v'", k, e.Properties[k]))
	}
	return msg + " with " + strings.Join(parts, " and ")
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidArgumentError reports an unusable argument.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' is invalid: %s", e.Argument, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// BadStateError reports an operation not allowed in the current state.
type BadStateError struct {
	Argument string
	Reason   string
}

func (e *BadStateError) Error() string {
	return fmt.Sprintf("argument '%s' has a bad state: %s", e.Argument, e.Reason)
}

func (e *BadStateError) Unwrap() error {
	return ErrBadState
}

// FieldError is a validation failure of one field value.
type FieldError struct {
	FieldIdentifier string `json:"field_identifier"`
	LanguageCode    string `json:"language_code"`
	Message         string `json:"message"`
}

// ContentFieldValidationError collects field validation failures.
type ContentFieldValidationError struct {
	Errors []FieldError
}

func (e *ContentFieldValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s[%s]: %s", fe.FieldIdentifier, fe.LanguageCode, fe.Message))
	}
	return "content fields did not validate: " + strings.Join(parts, "; ")
}

func (e *ContentFieldValidationError) Unwrap() error {
	return ErrContentValidation
}

// NotImplementedError reports a feature with no implementation, such as a
// search criterion no handler accepts.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Feature)
}

func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnauthorized reports whether err is or wraps ErrUnauthorized.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
