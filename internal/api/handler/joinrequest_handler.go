package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/api/middleware"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// JoinRequestHandler exposes the self-service enrollment workflow.
type JoinRequestHandler struct {
	requests ports.JoinRequestService
}

func NewJoinRequestHandler(requests ports.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{requests: requests}
}

// Create submits (or resubmits) the caller's request to join the tenant's
// program.
//
// @Summary      Request to join a program
// @Tags         join-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string              true  "Tenant id"
// @Param        body      body      joinRequestRequest  true  "Request details"
// @Success      201       {object}  domain.JoinRequest
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/join-requests [post]
func (h *JoinRequestHandler) Create(c echo.Context) error {
	var req joinRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.JoinRequestInput{Message: req.Message}
	if req.DesiredMoveInDate != nil {
		in.DesiredMoveInDate = *req.DesiredMoveInDate
	}

	r, err := h.requests.RequestJoin(c.Request().Context(), middleware.Principal(c), c.Param("tenantID"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// ListPending returns the tenant's pending requests for staff review.
//
// @Summary      List pending join requests
// @Tags         join-requests
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path     string  true  "Tenant id"
// @Success      200       {array}  domain.JoinRequest
// @Router       /v1/tenants/{tenantID}/join-requests [get]
func (h *JoinRequestHandler) ListPending(c echo.Context) error {
	list, err := h.requests.ListPending(c.Request().Context(), c.Param("tenantID"))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.JoinRequest{}
	}
	return c.JSON(http.StatusOK, list)
}

// Decide approves or denies a pending request. Approval creates the
// enrollment before the request flips to approved.
//
// @Summary      Decide a join request
// @Tags         join-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string                    true  "Tenant id"
// @Param        uid       path      string                    true  "Requesting principal uid"
// @Param        body      body      decideJoinRequestRequest  true  "Decision"
// @Success      200       {object}  domain.JoinRequest
// @Failure      409       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/join-requests/{uid}/decide [post]
func (h *JoinRequestHandler) Decide(c echo.Context) error {
	var req decideJoinRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := h.requests.Decide(c.Request().Context(), middleware.Principal(c), c.Param("tenantID"), c.Param("uid"), ports.DecideInput{
		Approve:    req.Action == "approve",
		ResidentID: req.ResidentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
