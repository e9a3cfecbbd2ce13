package validators

import (
	"task-manager.com/task-manager/internal/constants"
	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
	"task-manager.com/task-manager/internal/services"
	"task-manager.com/task-manager/internal/timezone"
)

func ValidatePreferencesRequest(r *dto.PreferencesRequest) (services.PreferencesPatch, error) {
	patch := services.PreferencesPatch{
		TimeZone:      r.TimeZone,
		Notifications: r.Notifications,
	}

	if r.Theme != nil {
		t, err := constants.ParseTheme(*r.Theme)
		if err != nil {
			return patch, err
		}
		patch.Theme = &t
	}
	if r.DefaultSort != nil {
		k, err := constants.ParseSortKey(*r.DefaultSort)
		if err != nil {
			return patch, err
		}
		patch.DefaultSort = &k
	}
	if r.TimeZone != nil && !timezone.Valid(*r.TimeZone) {
		return patch, apperrors.ErrInvalidTimeZone
	}

	return patch, nil
}
