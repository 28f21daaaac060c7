package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors onto the closed response-code set.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// Unauthenticated.
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"

	// Forbidden. The message is deliberately uniform for tenant-mismatch
	// denials so probing cannot distinguish existing tenants.
	case errors.Is(err, domain.ErrTenantMismatch),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrEnrollmentDischarged):
		return http.StatusForbidden, domain.ErrEnrollmentDischarged.Error()

	// Not found.
	case errors.Is(err, domain.ErrTenantNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrResidentNotFound),
		errors.Is(err, domain.ErrEnrollmentNotFound),
		errors.Is(err, domain.ErrJoinRequestNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrClaimsNotFound):
		return http.StatusNotFound, unwrapSentinel(err)

	// Conflict.
	case errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrAccountExists),
		errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, domain.ErrAlreadyEnrolled):
		return http.StatusConflict, unwrapSentinel(err)

	// Invalid argument.
	case errors.Is(err, domain.ErrInvalidSlug),
		errors.Is(err, domain.ErrInvalidPhase),
		errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()

	// Invalid state.
	case errors.Is(err, domain.ErrResidentNotLinked),
		errors.Is(err, domain.ErrRequestAlreadyDecided),
		errors.Is(err, domain.ErrInvalidTenantTransition):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// unwrapSentinel strips service-layer wrapping so the client sees the bare
// sentinel message ("already enrolled", not "enroll: already enrolled").
func unwrapSentinel(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
