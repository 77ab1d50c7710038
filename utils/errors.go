package utils

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorKind classifies application failures so callers can branch on them
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindState      ErrorKind = "state"
	KindInternal   ErrorKind = "internal"
)

// Sentinels matched with errors.Is against any AppError of the same kind.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrState      = errors.New("invalid state")
	ErrInternal   = errors.New("internal error")
)

// AppError represents a custom application error
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the kind sentinel
func (e *AppError) Unwrap() error {
	switch e.Kind {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindState:
		return ErrState
	default:
		return ErrInternal
	}
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusConflict,
		Message: message,
	}
}

func NewStateError(message string) *AppError {
	return &AppError{
		Kind:    KindState,
		Code:    http.StatusUnprocessableEntity,
		Message: message,
	}
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}

	slog.Error("Unhandled error", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "kind": KindInternal})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleCreated sends a 201 response
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
