// Package errors provides custom error types for the bond ledger API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors. Duplicate email and username are distinct codes so the API
// layer can tell the caller which field collided.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail    = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Bond errors.
var (
	ErrBondNotFound = &AppError{Code: "BOND_NOT_FOUND", Message: "Bond not found", StatusCode: http.StatusNotFound}
	ErrInvalidDate  = &AppError{Code: "INVALID_DATE", Message: "Bond has a malformed issue or maturity date", StatusCode: http.StatusBadRequest}
)

// Investment errors.
var (
	ErrInvestmentNotFound      = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
	ErrBelowMinimumInvestment  = &AppError{Code: "BELOW_MINIMUM_INVESTMENT", Message: "Investment amount is below the bond's minimum", StatusCode: http.StatusBadRequest}
	ErrInvalidInvestmentAmount = &AppError{Code: "INVALID_INVESTMENT_AMOUNT", Message: "Investment amount must be positive", StatusCode: http.StatusBadRequest}
	ErrInvalidInvestorAddress  = &AppError{Code: "INVALID_INVESTOR_ADDRESS", Message: "Investor wallet address is malformed", StatusCode: http.StatusBadRequest}
)

// Storage errors. The ledger never partially applies an operation: either the
// record is committed or the caller sees this.
var (
	ErrStorageUnavailable = &AppError{Code: "STORAGE_UNAVAILABLE", Message: "Ledger storage is unavailable", StatusCode: http.StatusServiceUnavailable}
)

// Settlement chain errors. Chain access is best-effort and never blocks the
// ledger.
var (
	ErrChainUnavailable = &AppError{Code: "CHAIN_UNAVAILABLE", Message: "Settlement chain node is unreachable", StatusCode: http.StatusServiceUnavailable}
)
