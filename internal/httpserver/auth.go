package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/logging"
	authmw "github.com/reviewmarket/api/internal/middleware/auth"
	"github.com/reviewmarket/api/internal/service/token"
)

type AuthHTTP struct {
	Tokens *token.Service
}

func unauthorized(c echo.Context, reason string) error {
	return c.JSON(http.StatusUnauthorized, statusBody{Status: 401, Errors: reason})
}

// LoginCheck exchanges credentials for an access/refresh token pair.
func (h *AuthHTTP) LoginCheck(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_check")

	fields := requestFields(c)
	user, err := h.Tokens.Authenticate(ctx, fields.String("email"), fields.String("password"))
	if err != nil {
		l.Warn("login_failed", "status", 401)
		return unauthorized(c, "Invalid credentials")
	}

	access, refresh, err := h.Tokens.IssuePair(ctx, user)
	if err != nil {
		return fail(c, l, "login_failed", err)
	}

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"token":         access,
		"refresh_token": refresh,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	fields := requestFields(c)
	access, refresh, err := h.Tokens.Rotate(ctx, fields.String("refresh_token"))
	if err != nil {
		l.Warn("refresh_failed", "status", 401)
		return unauthorized(c, "Invalid token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":         access,
		"refresh_token": refresh,
	})
}

// ActiveUser resolves the bearer token to the account it was issued for.
func (h *AuthHTTP) ActiveUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.active_user")

	principal := authmw.Principal(c)
	if principal == nil {
		return unauthorized(c, "Invalid token")
	}

	user, err := h.Tokens.Repo.GetUser(ctx, principal.UserID)
	if err != nil {
		l.Warn("active_user_failed", "status", 401, "userID", principal.UserID)
		return unauthorized(c, "Invalid token")
	}

	return c.JSON(http.StatusOK, viewUser(user))
}
