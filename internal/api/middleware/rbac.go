package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// Portal enforces portal access for the session role. A session whose role
// cannot enter the portal gets a 403 with the route's denial message; the
// missing-session case is handled earlier by Auth with a 401.
func Portal(portal domain.Portal, denied string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, _ := domain.ParseRole(raw)
			if !domain.CanAccessPortal(role, portal) {
				return echo.NewHTTPError(http.StatusForbidden, denied)
			}
			return next(c)
		}
	}
}

// RequireRole enforces a minimum hierarchy rank instead of portal membership.
func RequireRole(required domain.Role, denied string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, ok := domain.ParseRole(raw)
			if !ok || !domain.HasRoleAtLeast(role, required) {
				return echo.NewHTTPError(http.StatusForbidden, denied)
			}
			return next(c)
		}
	}
}
