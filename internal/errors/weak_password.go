package errors

import "net/http"

var ErrWeakPassword = &Exception{
	Message:    "password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a number",
	StatusCode: http.StatusBadRequest,
}
