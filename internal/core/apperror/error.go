// Package apperror provides structured error handling.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidRange = "INVALID_RANGE"

	// Business rule violations (422)
	CodeDeletionBlocked   = "DELETION_BLOCKED"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeDivisionDenied    = "DIVISION_ACCESS_DENIED"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict        = "CONFLICT"
	CodeDuplicate       = "DUPLICATE_ENTRY"
	CodeRebuildConflict = "REBUILD_CONFLICT"
)

// DeletionReason identifies which deletion guard tripped.
type DeletionReason string

const (
	// DeletionReasonStock means the entity still carries nonzero stock.
	DeletionReasonStock DeletionReason = "stock"
	// DeletionReasonHistory means historical events reference the entity.
	DeletionReasonHistory DeletionReason = "history"
	// DeletionReasonItems means the group still owns items.
	DeletionReasonItems DeletionReason = "items"
)

// AppError is the standard error type for the service.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRange creates an error for malformed or inverted date bounds.
// Raised before any query executes.
func NewInvalidRange(err error) *AppError {
	return &AppError{
		Code:       CodeInvalidRange,
		Message:    "Invalid date range",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewDeletionBlocked creates a deletion guard error (422).
// The reason tells the caller which guard tripped, so the web layer can
// produce a precise message.
func NewDeletionBlocked(entity string, reason DeletionReason) *AppError {
	return &AppError{
		Code:       CodeDeletionBlocked,
		Message:    fmt.Sprintf("%s cannot be deleted", entity),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"entity": entity, "reason": string(reason)},
	}
}

// NewRebuildConflict is returned when a rebuild is already in flight for
// the tenant.
func NewRebuildConflict(companyID string) *AppError {
	return &AppError{
		Code:       CodeRebuildConflict,
		Message:    "A rebuild is already running for this company",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"company_id": companyID},
	}
}

// NewDivisionDenied is returned when the caller's scope does not cover
// the division an operation targets.
func NewDivisionDenied() *AppError {
	return &AppError{
		Code:       CodeDivisionDenied,
		Message:    "No access to this division",
		HTTPStatus: http.StatusForbidden,
	}
}

// NewInsufficientStock creates a stock shortage error
func NewInsufficientStock(itemID string, requested, available string) *AppError {
	return &AppError{
		Code:       CodeInsufficientStock,
		Message:    "Insufficient stock",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"item_id":   itemID,
			"requested": requested,
			"available": available,
		},
	}
}

// NewDatabase wraps an underlying store failure (500).
func NewDatabase(err error) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		Message:    "Store operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsRebuildConflict checks if error is CodeRebuildConflict
func IsRebuildConflict(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeRebuildConflict
	}
	return false
}

// IsDeletionBlocked checks if error is CodeDeletionBlocked
func IsDeletionBlocked(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeDeletionBlocked
	}
	return false
}
