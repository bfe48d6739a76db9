package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input that is rejected as-is
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup by id that matched nothing
	ErrNotFound = errors.New("not found")
)

// ValidationError names the offending field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the missing resource
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Resource, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
