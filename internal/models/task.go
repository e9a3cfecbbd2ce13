package model

import (
	"strings"
	"time"

	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
)

// DateLayout is the wire format of a task's due date.
const DateLayout = "2006-01-02"

type Task struct {
	ID               string             `gorm:"primaryKey;size:36" json:"id"`
	UserID           string             `gorm:"size:36;not null;index" json:"user_id"`
	Title            string             `gorm:"not null" json:"title"`
	Completed        bool               `gorm:"not null;default:false" json:"completed"`
	Pinned           bool               `gorm:"not null;default:false" json:"pinned"`
	Category         constants.Category `gorm:"type:varchar(16);not null" json:"category"`
	Priority         constants.Priority `gorm:"type:varchar(16);not null" json:"priority"`
	Date             *time.Time         `json:"date,omitempty"`
	Notifications    bool               `gorm:"not null;default:false" json:"notifications"`
	NotificationTime *time.Time         `json:"notification_time,omitempty"`
	Version          uint               `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// HasDate reports whether the task carries a due date.
func (t Task) HasDate() bool {
	return t.Date != nil && !t.Date.IsZero()
}

// NotificationAt returns the notification time only when notifications are on.
func (t Task) NotificationAt() *time.Time {
	if !t.Notifications {
		return nil
	}
	return t.NotificationTime
}

// CivilDate truncates ts to midnight UTC of its own calendar day.
func CivilDate(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	return d, nil
}
