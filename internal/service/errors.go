package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// Unknown user and wrong password intentionally collapse into this one error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoPermission indicates an authenticated user may not perform the operation.
	ErrNoPermission = errors.New("you don't have permission to make this operation")
)

// NotFoundError reports that a resource does not exist, naming the resource
// type and the lookup field.
type NotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

func notFound(resource, field string, value any) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// ValidationError reports rejected input with a field-specific message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
