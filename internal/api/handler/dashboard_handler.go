package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/portal/internal/core/ports"
)

// DashboardHandler serves the dashboard aggregate and the caller's
// activity trail.
type DashboardHandler struct {
	crm ports.CRMService
}

func NewDashboardHandler(crm ports.CRMService) *DashboardHandler {
	return &DashboardHandler{crm: crm}
}

// Stats returns the backend dashboard aggregate.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.crm.GetDashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Activity lists the caller's latest activity, newest first.
//
// @Summary      Activity trail
// @Tags         dashboard
// @Produce      json
// @Param        limit  query     int  false  "Max entries (default 50, max 200)"
// @Success      200    {array}   domain.ActivityEvent
// @Failure      400    {object}  ErrorResponse
// @Router       /api/activity [get]
func (h *DashboardHandler) Activity(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}
	events, err := h.crm.Activity(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(events))
}
