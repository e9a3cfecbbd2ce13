package errors

import "net/http"

var ErrOptimisticLock = &Exception{
	Message:    "task was changed by another request, reload and retry",
	StatusCode: http.StatusConflict,
}
