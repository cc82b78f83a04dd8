package services

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// ServiceError represents a typed error with an HTTP status code. Message is
// safe to show to the user.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func newError(status int, message string) *ServiceError {
	return &ServiceError{StatusCode: status, Message: message}
}

func badRequest(message string) *ServiceError {
	return newError(http.StatusBadRequest, message)
}

func internal(message string) *ServiceError {
	return newError(http.StatusInternalServerError, message)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
