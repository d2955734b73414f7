package apperror

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across usecases. Delivery maps them to HTTP
// statuses with Status; internal details never reach the response body.
var (
	ErrValidation            = errors.New("missing or invalid input")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrOAuthExchangeFailed   = errors.New("authentication with provider failed")
	ErrNotFound              = errors.New("resource not found")
)

// Status returns the HTTP status code for a usecase error. Unknown errors
// map to 500 so repository or network failures are never exposed verbatim.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidRefreshToken):
		return http.StatusForbidden
	case errors.Is(err, ErrOAuthExchangeFailed):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for an error. Non-sentinel
// errors get a generic message.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
