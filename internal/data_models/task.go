package dto

import model "task-manager.com/task-manager/internal/models"

// CreateTaskRequest carries dates as YYYY-MM-DD and the notification time as
// RFC 3339.
type CreateTaskRequest struct {
	Title            string `json:"title"`
	Category         string `json:"category"`
	Priority         string `json:"priority"`
	Pinned           bool   `json:"pinned"`
	Date             string `json:"date"`
	Notifications    bool   `json:"notifications"`
	NotificationTime string `json:"notification_time"`
}

// UpdateTaskRequest is a partial update. An empty date string clears the due
// date.
type UpdateTaskRequest struct {
	Title     *string `json:"title"`
	Category  *string `json:"category"`
	Priority  *string `json:"priority"`
	Completed *bool   `json:"completed"`
	Pinned    *bool   `json:"pinned"`
	Date      *string `json:"date"`
	Version   *uint   `json:"version"`
}

type NotificationRequest struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

type TaskListResponse struct {
	Active    []model.Task `json:"active"`
	Completed []model.Task `json:"completed"`
	Count     int          `json:"count"`
	Sort      string       `json:"sort"`
	Category  string       `json:"category"`
}

type CalendarResponse struct {
	Date  string       `json:"date"`
	Tasks []model.Task `json:"tasks"`
	Count int          `json:"count"`
}
