package errors

import "net/http"

var ErrInvalidNotificationTime = &Exception{
	Message:    "notification time must be an RFC 3339 timestamp",
	StatusCode: http.StatusBadRequest,
}
