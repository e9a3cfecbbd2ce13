package errors

import "net/http"

var ErrInvalidName = &Exception{
	Message:    "name must be at least 2 characters",
	StatusCode: http.StatusBadRequest,
}
