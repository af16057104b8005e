package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a zozh error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrEmptyMeal      ErrorCode = "EMPTY_MEAL"      // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// ZozhError represents a structured error with code, status, and details.
type ZozhError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ZozhError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ZozhError {
	return &ZozhError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewEmptyMeal creates a 422 error for a message in which no line parsed
// as a meal item.
func NewEmptyMeal(lines int) *ZozhError {
	return &ZozhError{
		Code:    ErrEmptyMeal,
		Status:  422,
		Message: "no valid meal lines found",
		Details: map[string]any{"lines": lines},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ZozhError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ZozhError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err (or anything it wraps) is a ZozhError with the given code.
func Is(err error, code ErrorCode) bool {
	var zErr *ZozhError
	if stderrors.As(err, &zErr) {
		return zErr.Code == code
	}
	return false
}
