package model

import (
	"time"

	"task-manager.com/task-manager/internal/constants"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Preferences struct {
	UserID        string            `gorm:"primaryKey;size:36" json:"-"`
	Theme         constants.Theme   `gorm:"type:varchar(16);not null" json:"theme"`
	DefaultSort   constants.SortKey `gorm:"type:varchar(16);not null" json:"default_sort"`
	TimeZone      string            `gorm:"not null" json:"time_zone"`
	Notifications bool              `gorm:"not null" json:"notifications"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
