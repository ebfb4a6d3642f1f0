package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"backoffice/internal/model"
	"backoffice/internal/repository"
	"backoffice/internal/service"
)

// InvestmentHandler bundles investment endpoints.
type InvestmentHandler struct {
	svc service.InvestmentService
}

// NewInvestmentHandler creates a new investment handler.
func NewInvestmentHandler(svc service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{svc: svc}
}

// CreateInvestmentRequest represents an investment creation request.
type CreateInvestmentRequest struct {
	Code        string          `json:"code"`
	Source      string          `json:"source" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        string          `json:"date" validate:"required"`
	Status      string          `json:"status" validate:"omitempty,oneof=Active Completed Pending"`
	Description string          `json:"description"`
}

// UpdateInvestmentRequest represents a partial investment update.
type UpdateInvestmentRequest struct {
	Source      *string          `json:"source"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Status      *string          `json:"status" validate:"omitempty,oneof=Active Completed Pending"`
	Description *string          `json:"description"`
}

// CreateInvestment godoc
// @Summary Create investment
// @Tags investments
// @Accept json
// @Produce json
// @Param request body CreateInvestmentRequest true "Investment data"
// @Success 201 {object} model.Investment
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /investments [post]
func (h *InvestmentHandler) CreateInvestment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req CreateInvestmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	investment := &model.Investment{
		Code:        req.Code,
		Source:      req.Source,
		Amount:      req.Amount,
		Date:        date,
		Status:      model.InvestmentStatus(req.Status),
		Description: req.Description,
	}

	created, err := h.svc.CreateInvestment(c.Request().Context(), actor, investment)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListInvestments godoc
// @Summary List investments
// @Tags investments
// @Produce json
// @Param source query string false "Filter by source substring"
// @Param status query string false "Filter by status"
// @Param startDate query string false "Filter from date (YYYY-MM-DD)"
// @Param endDate query string false "Filter to date, exclusive (YYYY-MM-DD)"
// @Success 200 {array} model.Investment
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /investments [get]
func (h *InvestmentHandler) ListInvestments(c echo.Context) error {
	filter := repository.InvestmentFilter{
		SourceContains: c.QueryParam("source"),
		Status:         model.InvestmentStatus(c.QueryParam("status")),
	}

	var err error
	if filter.DateFrom, err = parseDateParam(c, "startDate"); err != nil {
		return err
	}
	if filter.DateTo, err = parseDateParam(c, "endDate"); err != nil {
		return err
	}

	investments, err := h.svc.ListInvestments(c.Request().Context(), filter)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, investments)
}

// GetInvestment godoc
// @Summary Get investment by id
// @Tags investments
// @Produce json
// @Param id path string true "Investment ID"
// @Success 200 {object} model.Investment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	investment, err := h.svc.GetInvestment(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, investment)
}

// UpdateInvestment godoc
// @Summary Update investment
// @Tags investments
// @Accept json
// @Produce json
// @Param id path string true "Investment ID"
// @Param request body UpdateInvestmentRequest true "Fields to update"
// @Success 200 {object} model.Investment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateInvestmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.InvestmentUpdate{
		Source:      req.Source,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		update.Date = &parsed
	}
	if req.Status != nil {
		s := model.InvestmentStatus(*req.Status)
		update.Status = &s
	}

	investment, err := h.svc.UpdateInvestment(c.Request().Context(), id, update)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, investment)
}

// DeleteInvestment godoc
// @Summary Delete investment
// @Tags investments
// @Produce json
// @Param id path string true "Investment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteInvestment(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "investment deleted successfully",
	})
}

// InvestmentStats godoc
// @Summary Investment statistics
// @Tags investments
// @Produce json
// @Success 200 {object} service.InvestmentStats
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /investments/stats [get]
func (h *InvestmentHandler) InvestmentStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// parseDateParam reads an optional YYYY-MM-DD query parameter.
func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := parseDate(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
	}
	return &parsed, nil
}
