package services

import "net/http"

// ServiceError is a typed error with an HTTP status code. Field names
// the offending input field for validation errors and is empty
// otherwise.
type ServiceError struct {
	StatusCode int
	Field      string
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

func validationError(field, message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Field: field, Message: message}
}

func notFoundError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: message}
}

func unauthorizedError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: message}
}

func internalError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: message}
}
