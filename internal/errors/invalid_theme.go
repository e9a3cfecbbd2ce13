package errors

import "net/http"

var ErrInvalidTheme = &Exception{
	Message:    "theme must be one of light, dark",
	StatusCode: http.StatusBadRequest,
}
