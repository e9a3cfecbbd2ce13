package validators

import (
	"strings"
	"time"

	"task-manager.com/task-manager/internal/constants"
	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
	"task-manager.com/task-manager/internal/services"
	"task-manager.com/task-manager/internal/view"
)

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseNotificationTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return nil, apperrors.ErrInvalidNotificationTime
	}
	return &ts, nil
}

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	in := services.CreateTaskInput{
		Title:         strings.TrimSpace(r.Title),
		Pinned:        r.Pinned,
		Notifications: r.Notifications,
	}
	if in.Title == "" {
		return in, apperrors.ErrTitleRequired
	}

	if r.Category != "" {
		c, err := constants.ParseCategory(r.Category)
		if err != nil {
			return in, err
		}
		in.Category = c
	}
	if r.Priority != "" {
		p, err := constants.ParsePriority(r.Priority)
		if err != nil {
			return in, err
		}
		in.Priority = p
	}

	var err error
	if in.Date, err = parseOptionalDate(r.Date); err != nil {
		return in, err
	}
	if in.NotificationTime, err = parseNotificationTime(r.NotificationTime); err != nil {
		return in, err
	}
	if in.Notifications && in.NotificationTime == nil {
		return in, apperrors.ErrInvalidNotificationTime
	}

	return in, nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) (services.TaskPatch, error) {
	patch := services.TaskPatch{
		Title:     r.Title,
		Completed: r.Completed,
		Pinned:    r.Pinned,
		Version:   r.Version,
	}

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return patch, apperrors.ErrTitleRequired
	}
	if r.Category != nil {
		c, err := constants.ParseCategory(*r.Category)
		if err != nil {
			return patch, err
		}
		patch.Category = &c
	}
	if r.Priority != nil {
		p, err := constants.ParsePriority(*r.Priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if r.Date != nil {
		d, err := parseOptionalDate(*r.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = d
		patch.ClearDate = d == nil
	}

	return patch, nil
}

func ValidateNotificationRequest(r *dto.NotificationRequest) (*time.Time, error) {
	return parseNotificationTime(r.Time)
}

// ParseViewQuery reads the list query parameters. Values must match the
// enumerations exactly; empty values are left for the service to default.
func ParseViewQuery(category, search, sort string) (view.Params, error) {
	p := view.Params{Search: search}

	if category != "" {
		f, err := constants.ParseCategoryFilter(category)
		if err != nil {
			return p, err
		}
		p.Category = f
	}
	if sort != "" {
		k, err := constants.ParseSortKey(sort)
		if err != nil {
			return p, err
		}
		p.Sort = k
	}

	return p, nil
}
