package handler

import (
	"net/http"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/service"
)

// serviceError translates domain errors into echo HTTP errors with the
// standard error body.
func serviceError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// parseID reads a UUID path parameter.
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// actorFromContext reads the authenticated identity the JWT middleware
// stored on the request context.
func actorFromContext(c echo.Context) (service.Actor, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return service.Actor{ID: id, Email: email, Role: role}, nil
}
