package errors

import "net/http"

var ErrInvalidSortKey = &Exception{
	Message:    "sort must be one of priority, date, title",
	StatusCode: http.StatusBadRequest,
}
