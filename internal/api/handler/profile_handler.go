package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/api/middleware"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// ProfileHandler exposes the login-scoped profile surface.
type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me returns the caller's profile, provisioning one just in time on first
// contact.
//
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	profile, err := h.profiles.FindOrCreate(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateMe merges the permitted self-service fields into the caller's
// profile. Resident link and tenant memberships are not writable here.
//
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Router       /v1/me [patch]
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profiles.Update(c.Request().Context(), middleware.Principal(c).UID, ports.UpdateProfileInput{
		DisplayName:   req.DisplayName,
		PhotoURL:      req.PhotoURL,
		SobrietyDate:  req.SobrietyDate,
		RecoveryGoals: req.RecoveryGoals,
		Notifications: req.Notifications,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// CreateResident registers a new resident record at intake. The record has
// no login account yet; LinkResident ties it to one later.
//
// @Summary      Create a resident record
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createResidentRequest  true  "Resident intake fields"
// @Success      201   {object}  domain.Resident
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/residents [post]
func (h *ProfileHandler) CreateResident(c echo.Context) error {
	p := middleware.Principal(c)
	if !p.Role.AtLeast(domain.RoleStaff) {
		return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
	}

	var req createResidentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := h.profiles.CreateResident(c.Request().Context(), ports.CreateResidentInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// LinkResident attaches a resident record to a principal's profile. Staff
// use this before approving a join request from an account that has never
// been matched to a clinical record. There is no unlink.
//
// @Summary      Link a profile to a resident record
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path      string               true  "Principal uid"
// @Param        body  body      linkResidentRequest  true  "Resident to link"
// @Success      204   "linked"
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/profiles/{uid}/resident [post]
func (h *ProfileHandler) LinkResident(c echo.Context) error {
	p := middleware.Principal(c)
	if !p.Role.AtLeast(domain.RoleStaff) {
		return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
	}

	var req linkResidentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.profiles.LinkResident(c.Request().Context(), c.Param("uid"), req.ResidentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
