// Package errors defines the stable error codes surfaced by the catalog,
// the order aggregator and the HTTP API.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// RestaurantNotFound indicates no catalog file declares the restaurant
	RestaurantNotFound ErrorCode = "RESTAURANT_NOT_FOUND"
	// ItemNotFound indicates the restaurant menu has no item with the id
	ItemNotFound ErrorCode = "ITEM_NOT_FOUND"
	// InvalidOrder indicates an order payload that could not be decoded
	InvalidOrder ErrorCode = "INVALID_ORDER"
	// CatalogUnavailable indicates the restaurants directory could not be read or parsed
	CatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	// RateLimited indicates too many order submissions
	RateLimited ErrorCode = "RATE_LIMITED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError carries a stable code alongside a human message.
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates an AppError. cause may be nil.
func New(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates an AppError without a cause from a format string.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an AppError with the same code, so callers can
// write errors.Is(err, errors.New(errors.ItemNotFound, "", nil)).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first AppError in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// As is errors.As, re-exported so callers importing this package need not
// alias the standard library one.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
