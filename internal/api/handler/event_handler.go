package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/api/middleware"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// EventHandler exposes tenant house events and the resident feed.
type EventHandler struct {
	events ports.HouseEventRepository
	feed   ports.FeedService
}

func NewEventHandler(events ports.HouseEventRepository, feed ports.FeedService) *EventHandler {
	return &EventHandler{events: events, feed: feed}
}

// Create adds a house event to the tenant's calendar.
//
// @Summary      Create a house event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path      string              true  "Tenant id"
// @Param        body      body      createEventRequest  true  "Event details"
// @Success      201       {object}  domain.HouseEvent
// @Failure      400       {object}  errorResponse
// @Router       /v1/tenants/{tenantID}/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e := &domain.HouseEvent{
		ID:          uuid.NewString(),
		TenantID:    c.Param("tenantID"),
		HouseID:     req.HouseID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		CreatedAt:   time.Now().UTC(),
	}
	if req.EndsAt != nil {
		e.EndsAt = *req.EndsAt
	}

	if err := h.events.Create(c.Request().Context(), e); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// List returns the tenant's upcoming events. Used by staff dashboards and,
// behind the resident gate, by the mobile client.
//
// @Summary      List house events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        tenantID  path     string  true   "Tenant id"
// @Param        from      query    string  false  "RFC3339 lower bound (default: now)"
// @Success      200       {array}  domain.HouseEvent
// @Router       /v1/tenants/{tenantID}/events [get]
func (h *EventHandler) List(c echo.Context) error {
	from := time.Now().UTC()
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be RFC3339")
		}
		from = t
	}

	list, err := h.events.ListByTenant(c.Request().Context(), c.Param("tenantID"), from)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.HouseEvent{}
	}
	return c.JSON(http.StatusOK, list)
}

// Feed returns the caller's merged cross-tenant event feed, sorted by start
// time. Events from every tenant the linked resident is actively enrolled
// in appear exactly once.
//
// @Summary      Get own cross-tenant event feed
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        from  query    string  false  "RFC3339 lower bound (default: now)"
// @Success      200   {array}  ports.FeedItem
// @Failure      422   {object} errorResponse
// @Router       /v1/me/feed [get]
func (h *EventHandler) Feed(c echo.Context) error {
	from := time.Now().UTC()
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be RFC3339")
		}
		from = t
	}

	items, err := h.feed.Feed(c.Request().Context(), middleware.Principal(c), from)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
