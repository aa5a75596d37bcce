package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// WrapHTTP maps a catalog service response to the unified Error type. A zero
// status means the request never completed (transport failure).
func WrapHTTP(err error, status int, message string) *Error {
	if message == "" {
		message = CatalogErrorMessage
	}
	if status == 0 {
		status = http.StatusBadGateway
	}
	return New(err, status, message)
}

// Upstream builds an Error for a non-2xx catalog response with no transport error.
func Upstream(status int, body string) *Error {
	return New(fmt.Errorf("unexpected status %d: %s", status, body), status, CatalogErrorMessage)
}

// IsAuthError reports whether err is an Error carrying an auth-class status.
func IsAuthError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}
