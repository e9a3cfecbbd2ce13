package errors

import "net/http"

var ErrInvalidCategory = &Exception{
	Message:    "category must be one of work, personal",
	StatusCode: http.StatusBadRequest,
}
