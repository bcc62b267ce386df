package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// OnboardingHandler drives the influencer onboarding wizard over HTTP.
type OnboardingHandler struct {
	service ports.OnboardingService
}

func NewOnboardingHandler(service ports.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// Draft handles GET /api/onboarding/draft.
//
// @Summary      Get the caller's onboarding draft
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/onboarding/draft [get]
func (h *OnboardingHandler) Draft(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	draft, err := h.service.Draft(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(draft))
}

// SaveStep handles PUT /api/onboarding/draft/:step.
//
// @Summary      Save one wizard step
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        step  path      int             true  "Step number (1-4)"
// @Param        body  body      map[string]any  true  "Step form payload"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Router       /api/onboarding/draft/{step} [put]
func (h *OnboardingHandler) SaveStep(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "step must be numeric")
	}

	var data map[string]any
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	draft, err := h.service.SaveStep(c.Request().Context(), userID, step, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(draft))
}

// Complete handles POST /api/onboarding/complete.
//
// @Summary      Complete onboarding and create the roster record
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/onboarding/complete [post]
func (h *OnboardingHandler) Complete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	inf, err := h.service.Complete(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok(inf))
}
