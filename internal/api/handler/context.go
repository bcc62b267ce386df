package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id must be present
// (presence proves the middleware ran). The role may legitimately be empty —
// an authenticated account that has not been provisioned a business role yet.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	raw, _ := c.Get("role").(string)
	role, _ = domain.ParseRole(raw)
	return userID, role, nil
}
