package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the client-facing text for err. Anything that is not an
// Exception is reported generically so internal details never leak.
func PublicMessage(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
