package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	jwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	investmentHandler *handler.InvestmentHandler,
	expenseHandler *handler.ExpenseHandler,
	dashboardHandler *handler.DashboardHandler,
	assistantHandler *handler.AssistantHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, _ := token.Claims.(jwt.MapClaims)
		return c.JSON(http.StatusOK, echo.Map{"token_claims": claims})
	})

	managers := requireRoles(model.RoleAdmin, model.RoleManager)
	adminOnly := requireRoles(model.RoleAdmin)

	// User routes
	secured.GET("/users", userHandler.ListUsers, managers)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser, adminOnly)
	secured.DELETE("/users/:id", userHandler.DeleteUser, adminOnly)

	// Project routes
	secured.GET("/projects", projectHandler.ListProjects)
	secured.GET("/projects/stats", projectHandler.ProjectStats)
	secured.GET("/projects/:id", projectHandler.GetProject)
	secured.POST("/projects", projectHandler.CreateProject, managers)
	secured.PUT("/projects/:id", projectHandler.UpdateProject, managers)
	secured.DELETE("/projects/:id", projectHandler.DeleteProject, managers)

	// Investment routes
	secured.GET("/investments", investmentHandler.ListInvestments)
	secured.GET("/investments/stats", investmentHandler.InvestmentStats)
	secured.GET("/investments/:id", investmentHandler.GetInvestment)
	secured.POST("/investments", investmentHandler.CreateInvestment, managers)
	secured.PUT("/investments/:id", investmentHandler.UpdateInvestment, managers)
	secured.DELETE("/investments/:id", investmentHandler.DeleteInvestment, managers)

	// Expense routes
	secured.GET("/expenses", expenseHandler.ListExpenses)
	secured.GET("/expenses/stats", expenseHandler.ExpenseStats)
	secured.GET("/expenses/:id", expenseHandler.GetExpense)
	secured.POST("/expenses", expenseHandler.CreateExpense, managers)
	secured.PUT("/expenses/:id", expenseHandler.UpdateExpense, managers)
	secured.DELETE("/expenses/:id", expenseHandler.DeleteExpense, managers)

	// Dashboard routes
	secured.GET("/dashboard/stats", dashboardHandler.Stats)
	secured.GET("/dashboard/charts", dashboardHandler.Charts)

	// Assistant routes
	secured.POST("/assistant/query", assistantHandler.Query)
}

// requireRoles rejects callers whose token role is not in the allowed set.
func requireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			role, _ := claims["role"].(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
