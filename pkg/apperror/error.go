package apperror

import (
	"errors"
	"net/http"
)

// Machine-readable error codes returned in the response envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeAlreadyApplied     = "ALREADY_APPLIED"
	CodeJobExpired         = "JOB_EXPIRED"
	CodeJobHasApplications = "JOB_HAS_APPLICATIONS"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUnavailable        = "UNAVAILABLE"
	CodeInternal           = "INTERNAL"
)

type AppError struct {
	Code    int         `json:"-"`
	ErrCode string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches structured details rendered under error.details.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func New(code int, errCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		ErrCode: errCode,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, CodeValidation, message, nil)
}

func DuplicateEmail(message string) *AppError {
	return New(http.StatusBadRequest, CodeDuplicateEmail, message, nil)
}

// InvalidCredentials is deliberately generic: callers must not distinguish
// an unknown email from a wrong password.
func InvalidCredentials() *AppError {
	return New(http.StatusBadRequest, CodeInvalidCredentials, "Invalid credentials", nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, message, nil)
}

// Conflict reports an invariant violation. The transport maps conflicts to 400.
func Conflict(errCode, message string) *AppError {
	if errCode == "" {
		errCode = CodeConflict
	}
	return New(http.StatusBadRequest, errCode, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, CodeRateLimited, message, nil)
}

func Unavailable(err error) *AppError {
	return New(http.StatusServiceUnavailable, CodeUnavailable, "Service temporarily unavailable. Please try again.", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, CodeInternal, "Internal Server Error", err)
}

// Is reports whether err is an AppError carrying the given machine code.
func Is(err error, errCode string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ErrCode == errCode
	}
	return false
}
