package main

import (
	"log"
	"net/http"

	_ "backoffice/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"backoffice/internal/assistant"
	"backoffice/internal/auth"
	"backoffice/internal/cache"
	"backoffice/internal/config"
	"backoffice/internal/db"
	"backoffice/internal/handler"
	"backoffice/internal/model"
	"backoffice/internal/repository"
	"backoffice/internal/router"
	"backoffice/internal/service"
)

// @title Back Office API
// @version 1.0
// @description Small-business back office with projects, investments, expenses, users and a natural-language assistant.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Investment{},
		&model.Expense{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	investmentRepo := repository.NewInvestmentRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	projectService := service.NewProjectService(projectRepo)
	investmentService := service.NewInvestmentService(investmentRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	dashboardService := service.NewDashboardService(userRepo, projectRepo, investmentRepo, expenseRepo, cacheClient)

	// Text generation is optional; without an API key the assistant answers
	// from the database alone.
	var enricher assistant.Enricher
	if cfg.HuggingFaceAPIKey != "" {
		enricher = assistant.NewHuggingFaceClient(cfg.HuggingFaceAPIKey, cfg.HuggingFaceModelURL)
	}
	interpreter := assistant.NewInterpreter(projectRepo, investmentRepo, expenseRepo, userRepo, enricher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	investmentHandler := handler.NewInvestmentHandler(investmentService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	assistantHandler := handler.NewAssistantHandler(interpreter)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		projectHandler,
		investmentHandler,
		expenseHandler,
		dashboardHandler,
		assistantHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
