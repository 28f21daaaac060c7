package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// EnrollmentHandler exposes the enrollment ledger for staff.
type EnrollmentHandler struct {
	enrollments ports.EnrollmentService
}

func NewEnrollmentHandler(enrollments ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Create enrolls a resident into the tenant's program.
//
// @Summary      Enroll a resident
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string         true  "Tenant id"
// @Param        body      body      enrollRequest  true  "Enrollment details"
// @Success      201       {object}  domain.Enrollment
// @Failure      400       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/enrollments [post]
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.EnrollInput{
		TenantID:   c.Param("tenantID"),
		ResidentID: req.ResidentID,
		HouseID:    req.HouseID,
		RoomID:     req.RoomID,
		BedID:      req.BedID,
		Status:     domain.EnrollmentStatus(req.Status),
		Phase:      req.Phase,
	}
	if req.SobrietyStartDate != nil {
		in.SobrietyStartDate = *req.SobrietyStartDate
	}
	if req.MoveInDate != nil {
		in.MoveInDate = *req.MoveInDate
	}

	e, err := h.enrollments.Enroll(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Update mutates placement, status, phase and date fields of an enrollment.
//
// @Summary      Update an enrollment
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID    path      string                   true  "Tenant id"
// @Param        residentID  path      string                   true  "Resident id"
// @Param        body        body      updateEnrollmentRequest  true  "Fields to update"
// @Success      200         {object}  domain.Enrollment
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/enrollments/{residentID} [patch]
func (h *EnrollmentHandler) Update(c echo.Context) error {
	var req updateEnrollmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateEnrollmentInput{
		HouseID:           req.HouseID,
		RoomID:            req.RoomID,
		BedID:             req.BedID,
		Phase:             req.Phase,
		SobrietyStartDate: req.SobrietyStartDate,
		MoveInDate:        req.MoveInDate,
		MoveOutDate:       req.MoveOutDate,
		DischargeReason:   req.DischargeReason,
	}
	if req.Status != nil {
		status := domain.EnrollmentStatus(*req.Status)
		in.Status = &status
	}

	e, err := h.enrollments.Update(c.Request().Context(), c.Param("tenantID"), c.Param("residentID"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// List returns the tenant's enrollments: all active ones, or a single
// house's roster when house_id is given.
//
// @Summary      List enrollments
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string  true   "Tenant id"
// @Param        house_id  query     string  false  "Filter by house"
// @Success      200       {array}   domain.Enrollment
// @Router       /v1/tenants/{tenantID}/enrollments [get]
func (h *EnrollmentHandler) List(c echo.Context) error {
	tenantID := c.Param("tenantID")

	var (
		list []*domain.Enrollment
		err  error
	)
	if houseID := c.QueryParam("house_id"); houseID != "" {
		list, err = h.enrollments.ListByHouse(c.Request().Context(), tenantID, houseID)
	} else {
		list, err = h.enrollments.ListActive(c.Request().Context(), tenantID)
	}
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Enrollment{}
	}
	return c.JSON(http.StatusOK, list)
}

// Stats returns the per-status enrollment counts for dashboards.
//
// @Summary      Enrollment counts by status
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string  true  "Tenant id"
// @Success      200       {object}  ports.EnrollmentStats
// @Router       /v1/tenants/{tenantID}/enrollments/stats [get]
func (h *EnrollmentHandler) Stats(c echo.Context) error {
	stats, err := h.enrollments.CountByStatus(c.Request().Context(), c.Param("tenantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
