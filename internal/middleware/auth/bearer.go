package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/service/token"
)

const principalKey = "principal"

type Middleware struct {
	Tokens *token.Service
}

// WithPrincipal attaches the principal for a valid bearer token and lets
// anonymous requests through. Endpoints that merely distinguish owner from
// stranger use this; the authorization decision stays in the service layer.
func (m *Middleware) WithPrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if raw := bearerToken(c); raw != "" {
			if p, err := m.Tokens.ParseAccess(raw); err == nil {
				c.Set(principalKey, p)
			}
		}
		return next(c)
	}
}

// RequireLogin rejects requests without a valid bearer token.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		p, err := m.Tokens.ParseAccess(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		c.Set(principalKey, p)
		return next(c)
	}
}

// Principal returns the authenticated principal, or nil for anonymous
// requests.
func Principal(c echo.Context) *models.Principal {
	if p, ok := c.Get(principalKey).(*models.Principal); ok {
		return p
	}
	return nil
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
