package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// SyncHandler exposes the tiered sync prioritizer to administrators.
type SyncHandler struct {
	service       ports.SyncService
	defaultBudget int
}

func NewSyncHandler(service ports.SyncService, defaultBudget int) *SyncHandler {
	return &SyncHandler{service: service, defaultBudget: defaultBudget}
}

type runSyncRequest struct {
	MaxCredits int `json:"max_credits"`
}

type updateInfluencersRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// Status handles GET /api/admin/sync/status.
//
// @Summary      Sync job status
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      503  {object}  errorResponse
// @Router       /api/admin/sync/status [get]
func (h *SyncHandler) Status(c echo.Context) error {
	status, err := h.service.JobStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(status))
}

// Run handles POST /api/admin/sync/run. The run executes synchronously; a
// second call while one is in flight gets a 409.
//
// @Summary      Trigger a sync run
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      runSyncRequest  false  "Credit budget (defaults to the configured daily budget)"
// @Success      200   {object}  envelope
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/admin/sync/run [post]
func (h *SyncHandler) Run(c echo.Context) error {
	var req runSyncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	budget := req.MaxCredits
	if budget <= 0 {
		budget = h.defaultBudget
	}

	result, err := h.service.RunSync(c.Request().Context(), budget)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(result))
}

// UpdateInfluencers handles POST /api/admin/sync/influencers — the manual
// override path that bypasses tier and staleness eligibility.
//
// @Summary      Force-refresh specific influencers
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateInfluencersRequest  true  "Influencer ids"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/sync/influencers [post]
func (h *SyncHandler) UpdateInfluencers(c echo.Context) error {
	var req updateInfluencersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.IDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ids must not be empty")
	}

	result, err := h.service.UpdateSpecific(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(result))
}
