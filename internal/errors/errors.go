// Package errors defines structured error types for the API.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode defines specific error types for the API.
type ErrorCode string

const (
	// ErrValidationFailed is returned when input data fails validation
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrMissingField is returned when a required field is missing
	ErrMissingField ErrorCode = "MISSING_FIELD"
	// ErrPathOutsideRoot is returned when a path resolves outside the projects root
	ErrPathOutsideRoot ErrorCode = "PATH_OUTSIDE_ROOT"

	// ErrProjectNotFound is returned when a project directory does not exist
	ErrProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"
	// ErrFileNotFound is returned when a file is not found
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	// ErrItemNotFound is returned when a file or folder is not found
	ErrItemNotFound ErrorCode = "ITEM_NOT_FOUND"
	// ErrTargetNotFound is returned when a move target directory is not found
	ErrTargetNotFound ErrorCode = "TARGET_NOT_FOUND"

	// ErrFileExists is returned when a file creation target already exists
	ErrFileExists ErrorCode = "FILE_EXISTS"
	// ErrFolderExists is returned when a folder creation target already exists
	ErrFolderExists ErrorCode = "FOLDER_EXISTS"
	// ErrItemExists is returned when a rename or move destination already exists
	ErrItemExists ErrorCode = "ITEM_EXISTS"
	// ErrNotAFile is returned when a content update targets a directory
	ErrNotAFile ErrorCode = "NOT_A_FILE"

	// ErrImportFailed is returned when every file in a batch import failed
	ErrImportFailed ErrorCode = "IMPORT_FAILED"
	// ErrStorageError is returned when a filesystem operation fails unexpectedly
	ErrStorageError ErrorCode = "STORAGE_ERROR"
	// ErrInternal is returned when an unexpected server error occurs
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// ErrorWithStatus is an error that includes an HTTP status code and error code.
type ErrorWithStatus interface {
	Error() string
	StatusCode() int
	Code() ErrorCode
	Details() map[string]any
}

// APIError is a concrete error type with status code, code, and optional details.
type APIError struct {
	statusCode int
	code       ErrorCode
	message    string
	details    map[string]any
	wrappedErr error
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, code ErrorCode, message string) *APIError {
	return &APIError{
		statusCode: statusCode,
		code:       code,
		message:    message,
		details:    make(map[string]any),
	}
}

// WithDetail adds a single detail to the error.
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	e.details[key] = value
	return e
}

// Wrap wraps an underlying error.
func (e *APIError) Wrap(err error) *APIError {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrappedErr)
	}
	return e.message
}

// StatusCode returns the HTTP status code.
func (e *APIError) StatusCode() int {
	return e.statusCode
}

// Code returns the error code.
func (e *APIError) Code() ErrorCode {
	return e.code
}

// Details returns additional error details.
func (e *APIError) Details() map[string]any {
	return e.details
}

// Unwrap returns the wrapped error if any.
func (e *APIError) Unwrap() error {
	return e.wrappedErr
}

// Predefined error constructors for common cases

// NotFound creates a 404 error with the given code.
func NotFound(code ErrorCode, message string) *APIError {
	return NewAPIError(http.StatusNotFound, code, message)
}

// Conflict creates a 409 error with the given code.
func Conflict(code ErrorCode, message string) *APIError {
	return NewAPIError(http.StatusConflict, code, message)
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrValidationFailed, message)
}

// MissingField creates a 400 Bad Request error for a missing field.
func MissingField(fieldName string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrMissingField, fmt.Sprintf("Missing required field: %s", fieldName))
}

// PathOutsideRoot creates a 400 error for a path escaping the projects root.
func PathOutsideRoot(path string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrPathOutsideRoot, fmt.Sprintf("Path resolves outside the projects root: %s", path))
}

// Internal returns a 500 Internal Server Error.
func Internal(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrInternal, message)
}

// InternalWithError creates a 500 error wrapping an underlying error.
func InternalWithError(message string, err error) *APIError {
	return Internal(message).Wrap(err)
}

// Storage creates a 500 error for unexpected filesystem failures.
func Storage(message string, err error) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrStorageError, message).Wrap(err)
}
