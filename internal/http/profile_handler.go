package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/http/validators"
)

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.UpdateProfile(
		c.Request().Context(), middleware.UserID(c), req.Name, req.AvatarURL,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdatePreferences(c echo.Context) error {
	var req dto.PreferencesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := validators.ValidatePreferencesRequest(&req)
	if err != nil {
		return err
	}

	prefs, err := h.profileService.UpdatePreferences(c.Request().Context(), middleware.UserID(c), patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, prefs)
}

func (h *Handler) UploadAvatar(c echo.Context) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return apperrors.ErrInvalidAvatar
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	profile, err := h.profileService.UploadAvatar(
		c.Request().Context(), middleware.UserID(c), file.Filename, file.Size, src,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}
