package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/api/metrics"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

// RequireCapability enforces the staff authorization gate for tenant-scoped
// routes. The target tenant is taken from the :tenantID route param. A
// non-member is denied before any lookup, so the response does not reveal
// whether the tenant exists.
func RequireCapability(cap domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			tenantID := c.Param("tenantID")

			if err := domain.Authorize(p, tenantID, cap); err != nil {
				metrics.AuthzDecisionsTotal.WithLabelValues(string(cap), "deny").Inc()
				return echo.NewHTTPError(http.StatusForbidden, err.Error())
			}

			metrics.AuthzDecisionsTotal.WithLabelValues(string(cap), "allow").Inc()
			return next(c)
		}
	}
}

// RequireSuperAdmin gates platform-level operations (tenant approval,
// claims administration).
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Principal(c).IsSuperAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}
