package api

import (
	"errors"
	"net/http"
)

// Error is a non-2xx response from the service, carrying the status code and
// the server-supplied message when one was present in the body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response. Callers treat it as an
// absent-data state rather than a failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsValidation reports whether err is a 4xx response other than
// unauthorized/not-found, i.e. a rejection the operator can correct.
func IsValidation(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusNotFound:
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500
}

// Reason converts err into the string shown next to the acting control: the
// server message when the response carried one, a generic fallback otherwise.
func Reason(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
