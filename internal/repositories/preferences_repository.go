package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-manager.com/task-manager/internal/constants"
	model "task-manager.com/task-manager/internal/models"
	"task-manager.com/task-manager/internal/timezone"
)

type PreferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

func DefaultPreferences(userID string) model.Preferences {
	return model.Preferences{
		UserID:        userID,
		Theme:         constants.ThemeLight,
		DefaultSort:   constants.SortPriority,
		TimeZone:      timezone.Default(),
		Notifications: true,
	}
}

// Get returns the stored preferences, or the defaults when none were saved.
func (r *PreferencesRepository) Get(ctx context.Context, userID string) (model.Preferences, error) {
	var prefs model.Preferences
	err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultPreferences(userID), nil
		}
		return model.Preferences{}, err
	}
	return prefs, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, prefs *model.Preferences) error {
	prefs.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(prefs).Error
}
