package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on email or full name"
// @Param        role    query     string  false  "Exact role match"
// @Param        page    query     int     false  "1-based page number"
// @Param        limit   query     int     false  "Rows per page (default 20, max 100)"
// @Success      200     {object}  envelope
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.UserFilter{
		Search: c.QueryParam("search"),
		Role:   c.QueryParam("role"),
		Page:   intQuery(c, "page"),
		Limit:  intQuery(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	data := result.Items
	if data == nil {
		data = []*domain.User{}
	}
	return c.JSON(http.StatusOK, okPage(data, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(user))
}
