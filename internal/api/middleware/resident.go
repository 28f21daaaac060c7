package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// residentIDKey is where the resolved resident id lives on the echo context.
const residentIDKey = "resident_id"

// ResidentAccess enforces the resident authorization path for mobile-facing
// tenant routes. It is deliberately disjoint from RequireCapability:
// residents are not tenant staff, so access is decided by enrollment status,
// not by role-vs-tenant claims. The check requires role to be exactly
// resident, a linked resident record, and a granting enrollment for the
// target tenant. A discharged enrollment fails closed.
func ResidentAccess(profiles ports.ProfileService, enrollments ports.EnrollmentService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p.Role != domain.RoleResident {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}

			ctx := c.Request().Context()
			profile, err := profiles.Get(ctx, p.UID)
			if err != nil {
				if errors.Is(err, domain.ErrProfileNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, domain.ErrResidentNotLinked.Error())
				}
				return err
			}
			if profile.ResidentID == "" {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrResidentNotLinked.Error())
			}

			tenantID := c.Param("tenantID")
			if err := enrollments.CheckResidentAccess(ctx, tenantID, profile.ResidentID); err != nil {
				if errors.Is(err, domain.ErrEnrollmentDischarged) {
					return echo.NewHTTPError(http.StatusForbidden, domain.ErrEnrollmentDischarged.Error())
				}
				if errors.Is(err, domain.ErrForbidden) {
					return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
				}
				return err
			}

			c.Set(residentIDKey, profile.ResidentID)
			return next(c)
		}
	}
}

// ResidentID extracts the resident id resolved by ResidentAccess.
func ResidentID(c echo.Context) string {
	id, _ := c.Get(residentIDKey).(string)
	return id
}
