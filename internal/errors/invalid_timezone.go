package errors

import "net/http"

var ErrInvalidTimeZone = &Exception{
	Message:    "unsupported time zone",
	StatusCode: http.StatusBadRequest,
}
