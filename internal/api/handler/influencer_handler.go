package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// InfluencerHandler handles HTTP requests for the influencer roster.
type InfluencerHandler struct {
	service ports.InfluencerService
}

func NewInfluencerHandler(service ports.InfluencerService) *InfluencerHandler {
	return &InfluencerHandler{service: service}
}

// List handles GET /api/influencers.
//
// @Summary      List roster records
// @Tags         influencers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on display name or handle"
// @Param        tier    query     string  false  "Exact tier match (GOLD, SILVER, PARTNERED, BRONZE)"
// @Param        page    query     int     false  "1-based page number"
// @Param        limit   query     int     false  "Rows per page (default 20, max 100)"
// @Success      200     {object}  envelope
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/influencers [get]
func (h *InfluencerHandler) List(c echo.Context) error {
	filter := ports.InfluencerFilter{
		Search: c.QueryParam("search"),
		Tier:   c.QueryParam("tier"),
		Page:   intQuery(c, "page"),
		Limit:  intQuery(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	data := result.Items
	if data == nil {
		data = []*domain.Influencer{}
	}
	return c.JSON(http.StatusOK, okPage(data, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Get handles GET /api/influencers/:id.
//
// @Summary      Get a roster record by id
// @Tags         influencers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Influencer id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/influencers/{id} [get]
func (h *InfluencerHandler) Get(c echo.Context) error {
	inf, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(inf))
}
