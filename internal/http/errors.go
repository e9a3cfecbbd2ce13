package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
)

// ErrorHandler renders every failure as {"message": ...}. Errors that are
// neither an Exception nor an echo.HTTPError are logged and reported as 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := apperrors.StatusCode(err)
	message := apperrors.PublicMessage(err)

	var appErr *apperrors.Exception
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	default:
		log.Printf("request %s %s failed: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"message": message})
	}
	if err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}
