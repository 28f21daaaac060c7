package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/api/middleware"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// ClaimsHandler exposes the role/tenant assignment surface. Permission
// checks live in the service: self-reads are allowed, privileged writes
// require super_admin.
type ClaimsHandler struct {
	claims ports.ClaimsService
}

func NewClaimsHandler(claims ports.ClaimsService) *ClaimsHandler {
	return &ClaimsHandler{claims: claims}
}

// Get returns the current claims record for a principal.
//
// @Summary      Get claims for a principal
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path      string  true  "Principal uid"
// @Success      200  {object}  domain.Claims
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/claims/{uid} [get]
func (h *ClaimsHandler) Get(c echo.Context) error {
	claims, err := h.claims.GetClaims(c.Request().Context(), middleware.Principal(c), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

// Set overwrites a principal's claims record. The new assignment takes
// effect on the next issued credential, not on credentials already in
// circulation.
//
// @Summary      Set claims for a principal
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path      string            true  "Principal uid"
// @Param        body  body      setClaimsRequest  true  "Role and tenant assignment"
// @Success      200   {object}  domain.Claims
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/claims/{uid} [put]
func (h *ClaimsHandler) Set(c echo.Context) error {
	var req setClaimsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := h.claims.SetClaims(c.Request().Context(), middleware.Principal(c), c.Param("uid"), ports.SetClaimsInput{
		TenantID: req.TenantID,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}
