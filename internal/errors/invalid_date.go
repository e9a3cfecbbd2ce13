package errors

import "net/http"

var ErrInvalidDate = &Exception{
	Message:    "date must be formatted as YYYY-MM-DD",
	StatusCode: http.StatusBadRequest,
}
