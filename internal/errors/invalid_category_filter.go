package errors

import "net/http"

var ErrInvalidCategoryFilter = &Exception{
	Message:    "category filter must be one of all, work, personal",
	StatusCode: http.StatusBadRequest,
}
