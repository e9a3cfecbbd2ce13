package errors

import "net/http"

var ErrIncorrectPassword = &Exception{
	Message:    "current password is incorrect",
	StatusCode: http.StatusUnauthorized,
}
