package services

import (
	"context"
	"io"
	"log"
	"strings"

	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/timezone"
)

// AvatarStore persists an uploaded image and returns its public URL. Remove
// ignores URLs the store did not issue.
type AvatarStore interface {
	Save(filename string, size int64, r io.Reader) (string, error)
	Remove(url string) error
}

type ProfileService struct {
	users   *repository.UserRepository
	prefs   *repository.PreferencesRepository
	avatars AvatarStore
}

func NewProfileService(
	users *repository.UserRepository,
	prefs *repository.PreferencesRepository,
	avatars AvatarStore,
) *ProfileService {
	return &ProfileService{users: users, prefs: prefs, avatars: avatars}
}

type Profile struct {
	User          *model.User       `json:"user"`
	Preferences   model.Preferences `json:"preferences"`
	TimeZoneLabel string            `json:"time_zone_label"`
}

type PreferencesPatch struct {
	Theme         *constants.Theme
	DefaultSort   *constants.SortKey
	TimeZone      *string
	Notifications *bool
}

func (s *ProfileService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:          user,
		Preferences:   prefs,
		TimeZoneLabel: timezone.Format(prefs.TimeZone),
	}, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, name, avatarURL *string) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if err := validateName(*name); err != nil {
			return nil, err
		}
		user.Name = strings.TrimSpace(*name)
	}
	if avatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*avatarURL)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *ProfileService) UpdatePreferences(ctx context.Context, userID string, patch PreferencesPatch) (model.Preferences, error) {
	if patch.Theme != nil && !patch.Theme.Valid() {
		return model.Preferences{}, apperrors.ErrInvalidTheme
	}
	if patch.DefaultSort != nil && !patch.DefaultSort.Valid() {
		return model.Preferences{}, apperrors.ErrInvalidSortKey
	}
	if patch.TimeZone != nil && !timezone.Valid(*patch.TimeZone) {
		return model.Preferences{}, apperrors.ErrInvalidTimeZone
	}

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return model.Preferences{}, err
	}

	if patch.Theme != nil {
		prefs.Theme = *patch.Theme
	}
	if patch.DefaultSort != nil {
		prefs.DefaultSort = *patch.DefaultSort
	}
	if patch.TimeZone != nil {
		prefs.TimeZone = *patch.TimeZone
	}
	if patch.Notifications != nil {
		prefs.Notifications = *patch.Notifications
	}

	if err := s.prefs.Save(ctx, &prefs); err != nil {
		return model.Preferences{}, err
	}
	return prefs, nil
}

// UploadAvatar stores the image and points the profile at it. The previous
// avatar file is removed once the new one is saved, and the new file is
// removed again if the profile cannot be updated.
func (s *ProfileService) UploadAvatar(
	ctx context.Context,
	userID, filename string,
	size int64,
	r io.Reader,
) (*Profile, error) {
	url, err := s.avatars.Save(filename, size, r)
	if err != nil {
		return nil, err
	}

	previous, err := s.setAvatar(ctx, userID, url)
	if err != nil {
		s.discardAvatar(url)
		return nil, err
	}
	if previous != "" && previous != url {
		s.discardAvatar(previous)
	}

	return s.Profile(ctx, userID)
}

func (s *ProfileService) setAvatar(ctx context.Context, userID, url string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	previous := user.AvatarURL
	user.AvatarURL = url
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return previous, nil
}

func (s *ProfileService) discardAvatar(url string) {
	if err := s.avatars.Remove(url); err != nil {
		log.Printf("failed to remove avatar %s: %v", url, err)
	}
}
