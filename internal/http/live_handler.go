package http

import (
	"log"

	"github.com/labstack/echo/v4"

	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/realtime"
)

// Live upgrades to a websocket that receives the caller's task change events
// until either side closes it.
func (h *Handler) Live(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already answered the client.
		log.Printf("websocket upgrade failed: %v", err)
		return nil
	}

	realtime.NewClient(h.hub, conn, middleware.UserID(c)).Serve()
	return nil
}
