package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/api/middleware"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// TenantHandler exposes the organization lifecycle.
type TenantHandler struct {
	tenants ports.TenantService
}

func NewTenantHandler(tenants ports.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Create registers a new operator organization owned by the caller. The
// owner is granted tenant_admin claims for the new tenant; the caller must
// refresh its credential to act on them.
//
// @Summary      Create a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTenantRequest  true  "Tenant details"
// @Success      201   {object}  domain.Tenant
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/tenants [post]
func (h *TenantHandler) Create(c echo.Context) error {
	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	t, err := h.tenants.Create(c.Request().Context(), ports.CreateTenantInput{
		Name:     req.Name,
		Slug:     req.Slug,
		OwnerUID: middleware.Principal(c).UID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Get returns a tenant by id.
//
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string  true  "Tenant id"
// @Success      200       {object}  domain.Tenant
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/tenants/{tenantID} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	t, err := h.tenants.GetByID(c.Request().Context(), c.Param("tenantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// GetBySlug supports public vanity discovery by slug.
//
// @Summary      Get a tenant by slug
// @Tags         tenants
// @Produce      json
// @Param        slug  path      string  true  "Tenant slug"
// @Success      200   {object}  domain.Tenant
// @Failure      404   {object}  errorResponse
// @Router       /v1/tenants/slug/{slug} [get]
func (h *TenantHandler) GetBySlug(c echo.Context) error {
	t, err := h.tenants.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Approve moves a pending tenant to approved and grants the owner claims.
//
// @Summary      Approve a pending tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string  true  "Tenant id"
// @Success      200       {object}  domain.Tenant
// @Failure      403       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/approve [post]
func (h *TenantHandler) Approve(c echo.Context) error {
	t, err := h.tenants.Approve(c.Request().Context(), middleware.Principal(c), c.Param("tenantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Reject moves a pending tenant to rejected.
//
// @Summary      Reject a pending tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string               true   "Tenant id"
// @Param        body      body      rejectTenantRequest  false  "Rejection reason"
// @Success      200       {object}  domain.Tenant
// @Failure      403       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/reject [post]
func (h *TenantHandler) Reject(c echo.Context) error {
	var req rejectTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	t, err := h.tenants.Reject(c.Request().Context(), middleware.Principal(c), c.Param("tenantID"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Suspend toggles an active tenant to suspended.
//
// @Summary      Suspend a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string  true  "Tenant id"
// @Success      200       {object}  domain.Tenant
// @Failure      403       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/suspend [post]
func (h *TenantHandler) Suspend(c echo.Context) error {
	t, err := h.tenants.Suspend(c.Request().Context(), middleware.Principal(c), c.Param("tenantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Activate toggles a suspended tenant back to active.
//
// @Summary      Activate a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string  true  "Tenant id"
// @Success      200       {object}  domain.Tenant
// @Failure      403       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/activate [post]
func (h *TenantHandler) Activate(c echo.Context) error {
	t, err := h.tenants.Activate(c.Request().Context(), middleware.Principal(c), c.Param("tenantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
