package dto

import (
	"net/http"

	"github.com/cobranza/backend/internal/domain/shared"
)

// Error codes that only exist at the HTTP boundary
const (
	ErrCodeValidation       = shared.CodeValidation
	ErrCodeNotFound         = shared.CodeNotFound
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid     = "INVALID_TOKEN"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:      http.StatusBadRequest,
	shared.CodeNotFound:        http.StatusNotFound,
	shared.CodeInvalidAmount:   http.StatusBadRequest,
	shared.CodeZeroBalance:     http.StatusBadRequest,
	shared.CodeBalanceExceeded: http.StatusBadRequest,
	shared.CodeDuplicateCut:    http.StatusConflict,
	shared.CodeOverlapping:     http.StatusConflict,
	shared.CodeInvalidDate:     http.StatusBadRequest,
	shared.CodeAlreadyExists:   http.StatusConflict,
	shared.CodeConcurrency:     http.StatusConflict,

	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeTokenExpired:     http.StatusUnauthorized,
	ErrCodeTokenInvalid:     http.StatusUnauthorized,
	ErrCodeDuplicateRequest: http.StatusConflict,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeUnavailable:      http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
