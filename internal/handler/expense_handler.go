package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"backoffice/internal/model"
	"backoffice/internal/repository"
	"backoffice/internal/service"
)

// ExpenseHandler bundles expense endpoints.
type ExpenseHandler struct {
	svc service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(svc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// CreateExpenseRequest represents an expense creation request.
type CreateExpenseRequest struct {
	Name        string          `json:"name" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category"`
	Date        string          `json:"date" validate:"required"`
	Description string          `json:"description"`
}

// UpdateExpenseRequest represents a partial expense update.
type UpdateExpenseRequest struct {
	Name        *string          `json:"name"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
}

// CreateExpense godoc
// @Summary Create expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body CreateExpenseRequest true "Expense data"
// @Success 201 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req CreateExpenseRequest
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

	expense := &model.Expense{
		Name:        req.Name,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
	}

	created, err := h.svc.CreateExpense(c.Request().Context(), actor, expense)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param category query string false "Filter by category"
// @Param startDate query string false "Filter from date (YYYY-MM-DD)"
// @Param endDate query string false "Filter to date, exclusive (YYYY-MM-DD)"
// @Success 200 {array} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	filter := repository.ExpenseFilter{
		Category: c.QueryParam("category"),
	}

	var err error
	if filter.DateFrom, err = parseDateParam(c, "startDate"); err != nil {
		return err
	}
	if filter.DateTo, err = parseDateParam(c, "endDate"); err != nil {
		return err
	}

	expenses, err := h.svc.ListExpenses(c.Request().Context(), filter)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, expenses)
}

// GetExpense godoc
// @Summary Get expense by id
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	expense, err := h.svc.GetExpense(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// UpdateExpense godoc
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.ExpenseUpdate{
		Name:        req.Name,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		update.Date = &parsed
	}

	expense, err := h.svc.UpdateExpense(c.Request().Context(), id, update)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense godoc
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteExpense(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "expense deleted successfully",
	})
}

// ExpenseStats godoc
// @Summary Expense statistics
// @Tags expenses
// @Produce json
// @Success 200 {object} service.ExpenseStats
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses/stats [get]
func (h *ExpenseHandler) ExpenseStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
