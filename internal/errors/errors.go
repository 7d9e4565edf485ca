package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents an ideabox error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrEmptyInput       ErrorCode = "EMPTY_INPUT"       // 400
	ErrNotConfirmed     ErrorCode = "NOT_CONFIRMED"     // 400
	ErrNothingToExport  ErrorCode = "NOTHING_TO_EXPORT" // 404
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE" // 503
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// IdeaError represents a structured error with code, status, and details.
type IdeaError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *IdeaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *IdeaError {
	return &IdeaError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewEmptyInput creates a 400 error for idea text that is blank after trimming.
// Controllers treat it as "nothing to do" rather than a failure.
func NewEmptyInput() *IdeaError {
	return &IdeaError{
		Code:    ErrEmptyInput,
		Status:  400,
		Message: "idea text is empty",
	}
}

// NewNotConfirmed creates a 400 error for a destructive action that was not confirmed.
func NewNotConfirmed(action string) *IdeaError {
	return &IdeaError{
		Code:    ErrNotConfirmed,
		Status:  400,
		Message: fmt.Sprintf("%s requires confirmation", action),
		Details: map[string]any{"action": action},
	}
}

// NewNothingToExport creates a 404 error for an export over an empty list.
func NewNothingToExport() *IdeaError {
	return &IdeaError{
		Code:    ErrNothingToExport,
		Status:  404,
		Message: "No ideas to export!",
	}
}

// NewStoreUnavailable creates a 503 error when no storage backend could be opened.
func NewStoreUnavailable(err error) *IdeaError {
	msg := "storage unavailable"
	if err != nil {
		msg = fmt.Sprintf("storage unavailable: %v", err)
	}
	return &IdeaError{
		Code:    ErrStoreUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *IdeaError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &IdeaError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) an IdeaError with the given code.
func Is(err error, code ErrorCode) bool {
	var iErr *IdeaError
	if stderrors.As(err, &iErr) {
		return iErr.Code == code
	}
	return false
}
