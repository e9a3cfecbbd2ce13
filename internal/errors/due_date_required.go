package errors

import "net/http"

var ErrDueDateRequired = &Exception{
	Message:    "task due date required for calendar export",
	StatusCode: http.StatusUnprocessableEntity,
}
