package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every bounded context
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidAmount   = "INVALID_AMOUNT"
	CodeZeroBalance     = "ZERO_BALANCE"
	CodeBalanceExceeded = "BALANCE_EXCEEDED"
	CodeDuplicateCut    = "DUPLICATE_CUT"
	CodeOverlapping     = "OVERLAPPING_RANGE"
	CodeInvalidDate     = "INVALID_DATE"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeConcurrency     = "CONCURRENCY_CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so sentinel comparisons
// with errors.Is work for errors built with a custom message.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithDetail returns a copy of the error with an extra detail entry
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeValidation, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrency, "Resource was modified by another process")
	ErrInvalidAmount       = NewDomainError(CodeInvalidAmount, "Amount must be greater than zero")
	ErrZeroBalance         = NewDomainError(CodeZeroBalance, "Debtor has no outstanding balance")
	ErrBalanceExceeded     = NewDomainError(CodeBalanceExceeded, "Amount exceeds the outstanding balance")
	ErrDuplicateCut        = NewDomainError(CodeDuplicateCut, "A cut already exists for this period")
	ErrOverlappingRange    = NewDomainError(CodeOverlapping, "Range overlaps an existing cut")
	ErrInvalidDate         = NewDomainError(CodeInvalidDate, "Invalid date")
)

// NewValidationError builds a VALIDATION_ERROR with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError builds a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id)).
		WithDetail("resource", resource)
}

// NewInvalidDateError builds an INVALID_DATE error
func NewInvalidDateError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidDate, fmt.Sprintf(format, args...))
}

// HasCode reports whether err is a DomainError with the given code
func HasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
