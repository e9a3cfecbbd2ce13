package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dto "task-manager.com/task-manager/internal/data_models"
	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/http/validators"
	model "task-manager.com/task-manager/internal/models"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := validators.ValidateCreateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// ListTasks serves the task collection view: ?category=all|work|personal,
// ?search= and ?sort=priority|date|title.
func (h *Handler) ListTasks(c echo.Context) error {
	params, err := validators.ParseViewQuery(
		c.QueryParam("category"),
		c.QueryParam("search"),
		c.QueryParam("sort"),
	)
	if err != nil {
		return err
	}

	result, err := h.taskService.View(c.Request().Context(), middleware.UserID(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TaskListResponse{
		Active:    result.Active,
		Completed: result.Completed,
		Count:     result.Count,
		Sort:      string(result.Sort),
		Category:  string(result.Category),
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := validators.ValidateUpdateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ToggleComplete(c echo.Context) error {
	task, err := h.taskService.ToggleComplete(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) TogglePin(c echo.Context) error {
	task, err := h.taskService.TogglePin(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) SetNotifications(c echo.Context) error {
	var req dto.NotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	at, err := validators.ValidateNotificationRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.taskService.SetNotifications(
		c.Request().Context(), middleware.UserID(c), c.Param("id"), req.Enabled, at,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ExportTask(c echo.Context) error {
	id := c.Param("id")
	ics, err := h.taskService.ExportICS(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="task-`+id+`.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// Calendar lists the tasks due on ?date=YYYY-MM-DD, or today in the user's
// timezone when no date is given.
func (h *Handler) Calendar(c echo.Context) error {
	var day *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			return err
		}
		day = &d
	}

	resolved, tasks, err := h.taskService.TasksOn(c.Request().Context(), middleware.UserID(c), day)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CalendarResponse{
		Date:  resolved.Format(model.DateLayout),
		Tasks: tasks,
		Count: len(tasks),
	})
}

func (h *Handler) Statistics(c echo.Context) error {
	stats, err := h.taskService.Statistics(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
