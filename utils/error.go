package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies application failures.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "InvalidArgument"
	KindForbidden       ErrorKind = "Forbidden"
	KindConflict        ErrorKind = "Conflict"
	KindNotFound        ErrorKind = "NotFound"
	KindUnavailable     ErrorKind = "Unavailable"
)

// AppError is the error type returned by the service layer.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewInvalidArgument(format string, args ...any) error {
	return &AppError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(format string, args ...any) error {
	return &AppError{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) error {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewUnavailable(format string, args ...any) error {
	return &AppError{Kind: KindUnavailable, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of an AppError anywhere in the chain, or "" for other errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code returned to clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError writes err with the status matching its kind. Internal errors hide their details.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	var appErr *AppError
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Message: appErr.Message, Code: string(appErr.Kind)})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
}
