package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
	"task-manager.com/task-manager/internal/services"
)

const claimsKey = "auth.claims"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Claims, error)
}

// Auth requires a bearer token. Websocket handshakes cannot set headers from
// browsers, so a "token" query parameter is accepted as well.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				token = c.QueryParam("token")
			}
			if token == "" {
				return apperrors.ErrUnauthorized
			}

			claims, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Claims returns the authenticated caller set by Auth.
func Claims(c echo.Context) *services.Claims {
	claims, _ := c.Get(claimsKey).(*services.Claims)
	return claims
}

func UserID(c echo.Context) string {
	if claims := Claims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
