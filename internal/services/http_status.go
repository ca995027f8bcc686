package services

import (
	"errors"
	"net/http"

	chits_errors "mun-chits/pkg/errors"
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, chits_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, chits_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, chits_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, chits_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chits_errors.ErrAlreadyExists),
		errors.Is(err, chits_errors.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, chits_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, chits_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode is the machine readable code sent alongside an error.
func ErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
