package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice/internal/service"
)

// DashboardHandler bundles overview endpoints.
type DashboardHandler struct {
	svc service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats godoc
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Charts godoc
// @Summary Dashboard chart data
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.DashboardCharts
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/charts [get]
func (h *DashboardHandler) Charts(c echo.Context) error {
	charts, err := h.svc.Charts(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, charts)
}
