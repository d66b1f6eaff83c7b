package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. The API layer maps them, and the
// store and domain errors they wrap, to HTTP status codes.
var (
	// ErrInvalidCredentials is returned by Authenticate for an unknown email
	// and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ServiceError is a custom error type for service failures. It records the
// failing operation and wraps the underlying cause.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewTermServiceError creates a ServiceError for the term service.
func NewTermServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "term", Operation: operation, Message: message, Err: err}
}

// NewUserServiceError creates a ServiceError for the user service.
func NewUserServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "user", Operation: operation, Message: message, Err: err}
}
