package api

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error with contextual information.
// This standardized error type provides consistent error handling across all
// simulators for cases where a requested resource does not exist in the store.
//
// The error includes resource type and name for precise error reporting and
// supports custom error messages for specific use cases.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "repository", "contact", "post", "device")
	ResourceType string

	// ResourceName is the specific identifier of the resource that was not found
	ResourceName string

	// Message provides a custom error message if the default format is insufficient
	Message string
}

// Error implements the error interface for NotFoundError.
// Returns either the custom message if provided, or a formatted default message
// using the resource type and name.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// NewNotFoundError creates a NotFoundError for the given resource.
func NewNotFoundError(resourceType, resourceName string) *NotFoundError {
	return &NotFoundError{ResourceType: resourceType, ResourceName: resourceName}
}

// NewNotFoundErrorf creates a NotFoundError with a custom formatted message.
func NewNotFoundErrorf(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
// This function provides a type-safe way to check for not found conditions
// in error handling code, supporting wrapped errors.
//
// Example:
//
//	result, err := sim.ExecuteTool(ctx, "get_contact", args)
//	if api.IsNotFound(err) {
//	    // Handle not found case
//	}
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// ValidationError indicates that an argument failed domain validation: a
// missing required field, a malformed identifier, a value outside its
// permitted range or enum, or a structurally invalid payload.
type ValidationError struct {
	// Field is the argument or field that failed validation, when known.
	Field string

	// Message describes the validation failure.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewFieldValidationError creates a ValidationError for a specific field.
func NewFieldValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation checks if an error is a ValidationError using error unwrapping.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// InvalidInputError indicates input that is well-typed but unusable in
// combination: conflicting identifiers, an empty prompt, a missing
// mode-specific argument. It is kept distinct from ValidationError because
// the original services report the two conditions differently.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInputError creates an InvalidInputError with a formatted message.
func NewInvalidInputError(format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidInput checks if an error is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var invalidInputErr *InvalidInputError
	return errors.As(err, &invalidInputErr)
}

// InvalidStateError indicates an operation that cannot be performed in the
// resource's current state, such as merging an already merged pull request or
// importing an asset whose generation job has not completed.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// NewInvalidStateError creates an InvalidStateError with a formatted message.
func NewInvalidStateError(format string, args ...interface{}) *InvalidStateError {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidState checks if an error is an InvalidStateError.
func IsInvalidState(err error) bool {
	var invalidStateErr *InvalidStateError
	return errors.As(err, &invalidStateErr)
}

// DuplicateError indicates a uniqueness violation: creating a resource whose
// name or identifier is already taken.
type DuplicateError struct {
	ResourceType string
	ResourceName string
	Message      string
}

func (e *DuplicateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s already exists", e.ResourceType, e.ResourceName)
}

// NewDuplicateError creates a DuplicateError for the given resource.
func NewDuplicateError(resourceType, resourceName string) *DuplicateError {
	return &DuplicateError{ResourceType: resourceType, ResourceName: resourceName}
}

// NewDuplicateErrorf creates a DuplicateError with a custom formatted message.
func NewDuplicateErrorf(format string, args ...interface{}) *DuplicateError {
	return &DuplicateError{Message: fmt.Sprintf(format, args...)}
}

// IsDuplicate checks if an error is a DuplicateError.
func IsDuplicate(err error) bool {
	var duplicateErr *DuplicateError
	return errors.As(err, &duplicateErr)
}
