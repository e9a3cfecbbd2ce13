package services

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager.com/task-manager/internal/avatars"
	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
)

func newProfileService(t *testing.T, f *fixture) *ProfileService {
	t.Helper()

	svc, _ := newProfileServiceWithDir(t, f)
	return svc
}

func newProfileServiceWithDir(t *testing.T, f *fixture) (*ProfileService, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := avatars.NewFileStore(dir, "/avatars", 1024)
	require.NoError(t, err)
	return NewProfileService(f.users, f.prefs, store), dir
}

func avatarFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProfileService_Profile(t *testing.T) {
	f := newFixture(t)
	svc := newProfileService(t, f)
	userID := signUp(t, f, "amira@example.com")

	profile, err := svc.Profile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "amira@example.com", profile.User.Email)
	assert.Equal(t, constants.ThemeLight, profile.Preferences.Theme)
	assert.Equal(t, "Paris (UTC+1/+2)", profile.TimeZoneLabel)

	_, err = svc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	svc := newProfileService(t, f)
	ctx := context.Background()
	userID := signUp(t, f, "amira@example.com")

	name := "Amira B."
	profile, err := svc.UpdateProfile(ctx, userID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Amira B.", profile.User.Name)

	short := "A"
	_, err = svc.UpdateProfile(ctx, userID, &short, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidName)
}

func TestProfileService_UpdatePreferencesIsPartial(t *testing.T) {
	f := newFixture(t)
	svc := newProfileService(t, f)
	ctx := context.Background()
	userID := signUp(t, f, "amira@example.com")

	dark := constants.ThemeDark
	prefs, err := svc.UpdatePreferences(ctx, userID, PreferencesPatch{Theme: &dark})
	require.NoError(t, err)
	assert.Equal(t, constants.ThemeDark, prefs.Theme)
	assert.Equal(t, constants.SortPriority, prefs.DefaultSort)
	assert.Equal(t, "Europe/Paris", prefs.TimeZone)

	off := false
	prefs, err = svc.UpdatePreferences(ctx, userID, PreferencesPatch{Notifications: &off})
	require.NoError(t, err)
	assert.False(t, prefs.Notifications)
	assert.Equal(t, constants.ThemeDark, prefs.Theme)

	zone := "Mars/Olympus"
	_, err = svc.UpdatePreferences(ctx, userID, PreferencesPatch{TimeZone: &zone})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTimeZone)

	theme := constants.Theme("solarized")
	_, err = svc.UpdatePreferences(ctx, userID, PreferencesPatch{Theme: &theme})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTheme)
}

func TestProfileService_UploadAvatar(t *testing.T) {
	f := newFixture(t)
	svc := newProfileService(t, f)
	ctx := context.Background()
	userID := signUp(t, f, "amira@example.com")

	profile, err := svc.UploadAvatar(ctx, userID, "me.png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(profile.User.AvatarURL, "/avatars/"))
	assert.True(t, strings.HasSuffix(profile.User.AvatarURL, ".png"))

	_, err = svc.UploadAvatar(ctx, userID, "me.exe", 4, strings.NewReader("MZ.."))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAvatar)
}

func TestProfileService_UploadAvatarReplacesPreviousFile(t *testing.T) {
	f := newFixture(t)
	svc, dir := newProfileServiceWithDir(t, f)
	ctx := context.Background()
	userID := signUp(t, f, "amira@example.com")

	first, err := svc.UploadAvatar(ctx, userID, "one.png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	second, err := svc.UploadAvatar(ctx, userID, "two.png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)

	assert.NotEqual(t, first.User.AvatarURL, second.User.AvatarURL)
	assert.Equal(t, []string{strings.TrimPrefix(second.User.AvatarURL, "/avatars/")}, avatarFiles(t, dir))
}

func TestProfileService_UploadAvatarCleansUpWhenProfileUpdateFails(t *testing.T) {
	f := newFixture(t)
	svc, dir := newProfileServiceWithDir(t, f)

	_, err := svc.UploadAvatar(context.Background(), "missing", "me.png", 4, strings.NewReader("\x89PNG"))
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Empty(t, avatarFiles(t, dir))
}

func TestProfileService_UploadAvatarKeepsExternalAvatarURL(t *testing.T) {
	f := newFixture(t)
	svc, dir := newProfileServiceWithDir(t, f)
	ctx := context.Background()
	userID := signUp(t, f, "amira@example.com")

	external := "https://cdn.example.com/amira.png"
	_, err := svc.UpdateProfile(ctx, userID, nil, &external)
	require.NoError(t, err)

	profile, err := svc.UploadAvatar(ctx, userID, "me.png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.Len(t, avatarFiles(t, dir), 1)
	assert.True(t, strings.HasPrefix(profile.User.AvatarURL, "/avatars/"))
}
