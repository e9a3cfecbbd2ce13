package errors

import "net/http"

var ErrInvalidAvatar = &Exception{
	Message:    "avatar must be a png, jpg, gif or webp image within the size limit",
	StatusCode: http.StatusBadRequest,
}
