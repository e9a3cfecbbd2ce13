package errors

import "net/http"

var ErrTaskIDRequired = &Exception{
	Message:    "task id must not be empty",
	StatusCode: http.StatusBadRequest,
}
