package errors

import "net/http"

var ErrInvalidPriority = &Exception{
	Message:    "priority must be one of high, medium, low",
	StatusCode: http.StatusBadRequest,
}
