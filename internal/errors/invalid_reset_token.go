package errors

import "net/http"

var ErrInvalidResetToken = &Exception{
	Message:    "invalid or expired reset token",
	StatusCode: http.StatusBadRequest,
}
