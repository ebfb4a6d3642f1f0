package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice/internal/assistant"
	"backoffice/internal/errors"
)

// AssistantHandler exposes the natural-language query endpoint.
type AssistantHandler struct {
	interpreter *assistant.Interpreter
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(interpreter *assistant.Interpreter) *AssistantHandler {
	return &AssistantHandler{interpreter: interpreter}
}

// QueryRequest represents a natural-language query.
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// Query godoc
// @Summary Interpret a natural-language query
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body QueryRequest true "Query text"
// @Success 200 {object} assistant.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /assistant/query [post]
func (h *AssistantHandler) Query(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caller := assistant.Caller{ID: actor.ID, Email: actor.Email, Role: actor.Role}
	envelope, err := h.interpreter.Interpret(c.Request().Context(), req.Query, caller)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to process query",
			Code:  "QUERY_FAILED",
		})
	}
	return c.JSON(http.StatusOK, envelope)
}
