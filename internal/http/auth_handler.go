package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager.com/task-manager/internal/data_models"
	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/services"
)

func (h *Handler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.authService.SignUp(ctx, services.SignUpInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
		TimeZone:  req.TimeZone,
	}); err != nil {
		return err
	}

	session, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, session)
}

func (h *Handler) SignIn(c echo.Context) error {
	var req dto.SignInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, session)
}

func (h *Handler) SignOut(c echo.Context) error {
	if err := h.authService.SignOut(c.Request().Context(), middleware.Claims(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	var req dto.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.authService.ChangePassword(
		c.Request().Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword,
	)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ChangeEmail ends the current session; the client signs in again with the
// new address.
func (h *Handler) ChangeEmail(c echo.Context) error {
	var req dto.ChangeEmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.authService.ChangeEmail(
		c.Request().Context(), middleware.Claims(c), req.CurrentPassword, req.NewEmail,
	)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword always answers 202 so the response does not reveal whether
// the address is registered.
func (h *Handler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if _, err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"message": "if the address is registered, a reset link has been issued",
	})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
