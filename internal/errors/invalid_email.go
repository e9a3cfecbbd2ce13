package errors

import "net/http"

var ErrInvalidEmail = &Exception{
	Message:    "invalid email address",
	StatusCode: http.StatusBadRequest,
}
