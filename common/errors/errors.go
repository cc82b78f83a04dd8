package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Something went wrong. Please try again later.", err)
}

func ServiceUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, "The bookstore is temporarily unavailable.", err)
}

// From converts any error into an *Error, defaulting to a 500.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// ErrorPage is the template name rendered by ErrorMiddleware.
const ErrorPage = "error.html"

// ErrorMiddleware renders the last error attached to the context as an HTML
// error page, unless a response was already written.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := From(c.Errors.Last().Err)
		c.HTML(appErr.Code, ErrorPage, gin.H{
			"Code":    appErr.Code,
			"Status":  http.StatusText(appErr.Code),
			"Message": appErr.Message,
		})
		c.Abort()
	}
}
