package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// SessionHandler resolves the caller's role into the access facts the page
// layer routes on: the landing path and the portals the role may enter.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type sessionResponse struct {
	UserID       string          `json:"user_id"`
	Role         string          `json:"role,omitempty"`
	RedirectPath string          `json:"redirect_path"`
	Portals      map[string]bool `json:"portals"`
}

// Resolve handles GET /api/session.
//
// @Summary      Resolve the session's access profile
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/session [get]
func (h *SessionHandler) Resolve(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	portals := map[string]bool{}
	for _, p := range []domain.Portal{domain.PortalBrand, domain.PortalInfluencer, domain.PortalStaff, domain.PortalAdmin} {
		portals[string(p)] = domain.CanAccessPortal(role, p)
	}

	return c.JSON(http.StatusOK, sessionResponse{
		UserID:       userID,
		Role:         string(role),
		RedirectPath: domain.RedirectPathFor(role),
		Portals:      portals,
	})
}
