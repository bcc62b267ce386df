package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// BrandHandler handles HTTP requests for brand CRUD operations.
type BrandHandler struct {
	service ports.BrandService
}

func NewBrandHandler(service ports.BrandService) *BrandHandler {
	return &BrandHandler{service: service}
}

type createBrandRequest struct {
	UserID      string `json:"user_id"`
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

type updateBrandRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

// List handles GET /api/brands.
//
// @Summary      List brands
// @Tags         brands
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Partial match on company name"
// @Param        industry  query     string  false  "Exact industry match"
// @Param        page      query     int     false  "1-based page number"
// @Param        limit     query     int     false  "Rows per page (default 20, max 100)"
// @Success      200       {object}  envelope
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/brands [get]
func (h *BrandHandler) List(c echo.Context) error {
	filter := ports.BrandFilter{
		Search:   c.QueryParam("search"),
		Industry: c.QueryParam("industry"),
		Page:     intQuery(c, "page"),
		Limit:    intQuery(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	data := result.Items
	if data == nil {
		data = []*domain.Brand{}
	}
	return c.JSON(http.StatusOK, okPage(data, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Create handles POST /api/brands.
//
// @Summary      Create a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBrandRequest  true  "Brand details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Router       /api/brands [post]
func (h *BrandHandler) Create(c echo.Context) error {
	var req createBrandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" || req.CompanyName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: user_id and company_name are required")
	}

	brand, err := h.service.Create(c.Request().Context(), ports.CreateBrandInput{
		UserID:      req.UserID,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		WebsiteURL:  req.WebsiteURL,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ok(brand))
}

// Get handles GET /api/brands/:id.
//
// @Summary      Get a brand by id
// @Tags         brands
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Brand id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/brands/{id} [get]
func (h *BrandHandler) Get(c echo.Context) error {
	brand, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(brand))
}

// Update handles PATCH /api/brands/:id.
//
// @Summary      Update brand fields
// @Tags         brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Brand id"
// @Param        body  body      updateBrandRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      404   {object}  errorResponse
// @Router       /api/brands/{id} [patch]
func (h *BrandHandler) Update(c echo.Context) error {
	var req updateBrandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	brand, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.BrandUpdate{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		WebsiteURL:  req.WebsiteURL,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok(brand))
}

// intQuery parses a numeric query parameter, returning 0 when absent or junk.
func intQuery(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}
