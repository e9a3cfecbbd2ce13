package http

import (
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-manager.com/task-manager/internal/http/middlewares"
)

type RouteOptions struct {
	RateLimitPerMinute int
	AvatarDir          string
	AvatarMaxBytes     int64
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency.Round(time.Millisecond), v.RequestID)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute))

	if opts.AvatarDir != "" {
		e.Static("/avatars", opts.AvatarDir)
	}

	e.GET("/timezones", h.ListTimeZones)

	auth := e.Group("/auth")
	auth.POST("/signup", h.SignUp)
	auth.POST("/signin", h.SignIn)
	auth.POST("/password/forgot", h.ForgotPassword)
	auth.POST("/password/reset", h.ResetPassword)

	requireAuth := middleware.Auth(h.authService)

	auth.POST("/signout", h.SignOut, requireAuth)
	auth.PUT("/password", h.ChangePassword, requireAuth)
	auth.PUT("/email", h.ChangeEmail, requireAuth)

	e.GET("/tasks", h.ListTasks, requireAuth)
	e.POST("/tasks", h.CreateTask, requireAuth)
	e.GET("/tasks/:id", h.GetTask, requireAuth)
	e.PATCH("/tasks/:id", h.UpdateTask, requireAuth)
	e.DELETE("/tasks/:id", h.DeleteTask, requireAuth)
	e.POST("/tasks/:id/complete", h.ToggleComplete, requireAuth)
	e.POST("/tasks/:id/pin", h.TogglePin, requireAuth)
	e.PUT("/tasks/:id/notifications", h.SetNotifications, requireAuth)
	e.GET("/tasks/:id/calendar.ics", h.ExportTask, requireAuth)

	e.GET("/calendar", h.Calendar, requireAuth)
	e.GET("/statistics", h.Statistics, requireAuth)

	e.GET("/profile", h.GetProfile, requireAuth)
	e.PATCH("/profile", h.UpdateProfile, requireAuth)
	e.PUT("/profile/preferences", h.UpdatePreferences, requireAuth)
	e.POST("/profile/avatar", h.UploadAvatar, requireAuth, echomw.BodyLimit(bodyLimit(opts.AvatarMaxBytes)))

	e.GET("/ws", h.Live, requireAuth)
}

// bodyLimit leaves room for multipart framing around the avatar itself.
func bodyLimit(maxBytes int64) string {
	if maxBytes <= 0 {
		maxBytes = 2 << 20
	}
	return fmt.Sprintf("%dK", maxBytes/1024+64)
}
