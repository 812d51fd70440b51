package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrBadRequest         = errors.New("bad request")
	ErrInternal           = errors.New("internal server error")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Input validation, always detected before any write.
	ErrMissingFields  = errors.New("missing details")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrWeakPassword   = errors.New("weak password")
	ErrInvalidAddress = errors.New("invalid address")

	ErrUploadFailed  = errors.New("image upload failed")
	ErrPersistence   = errors.New("persistence error")
	ErrDuplicateCode = errors.New("duplicate code")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds a 404 AppError carrying a client-facing message.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, ErrNotFound)
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.Is(err, ErrInvalidAddress) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrDuplicateCode) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, ErrUploadFailed) {
		return http.StatusBadGateway
	}
	// Default to internal server error
	return http.StatusInternalServerError
}

// Message returns the text sent to clients for err. Validation failures keep
// the wording existing admin panels already display; everything else exposes
// the underlying error text.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrMissingFields):
		return "Missing Details"
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email"
	case errors.Is(err, ErrWeakPassword):
		return "Please enter a strong password"
	case errors.Is(err, ErrInvalidAddress):
		return "Please enter a valid address"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrRateLimitExceeded):
		return "Too many attempts, try again later"
	}
	return err.Error()
}
