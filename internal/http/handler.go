package http

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
	"task-manager.com/task-manager/internal/realtime"
	"task-manager.com/task-manager/internal/services"
	"task-manager.com/task-manager/internal/timezone"
)

type Handler struct {
	authService    *services.AuthService
	taskService    *services.TaskService
	profileService *services.ProfileService
	hub            *realtime.Hub
	upgrader       websocket.Upgrader
}

func NewHandler(
	authService *services.AuthService,
	taskService *services.TaskService,
	profileService *services.ProfileService,
	hub *realtime.Hub,
	allowedOrigins []string,
) *Handler {
	return &Handler{
		authService:    authService,
		taskService:    taskService,
		profileService: profileService,
		hub:            hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}

// bind decodes the request body, reporting malformed input uniformly.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return apperrors.ErrInvalidJSON
	}
	return nil
}

func (h *Handler) ListTimeZones(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"default":   timezone.Default(),
		"timezones": timezone.Options(),
	})
}
