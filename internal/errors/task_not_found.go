package errors

import "net/http"

// ErrTaskNotFound is also returned for tasks owned by another user.
var ErrTaskNotFound = &Exception{
	Message:    "task does not exist",
	StatusCode: http.StatusNotFound,
}
