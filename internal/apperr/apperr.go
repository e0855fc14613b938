// Package apperr defines the error kinds that cross the application
// boundary: NotFound, Unauthorized, AlreadyExists and Validation. The
// transport layer maps them to response statuses; nothing below it does.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced id does not resolve.
type NotFoundError struct {
	Kind string // entity kind, e.g. "project"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UnauthorizedError reports a denied permission check or failed credentials.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return e.Reason
}

func Unauthorized(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

func IsUnauthorized(err error) bool {
	var ua *UnauthorizedError
	return errors.As(err, &ua)
}

// AlreadyExistsError reports a uniqueness violation.
type AlreadyExistsError struct {
	Kind  string
	Field string
	Value string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Kind, e.Field, e.Value)
}

func AlreadyExists(kind, field, value string) error {
	return &AlreadyExistsError{Kind: kind, Field: field, Value: value}
}

func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return errors.As(err, &ae)
}

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func Validation(fields map[string][]string) error {
	return &ValidationError{Fields: fields}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
