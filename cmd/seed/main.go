package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"backoffice/internal/config"
	"backoffice/internal/db"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

const seedPassword = "password123"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Investment{},
		&model.Expense{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	investmentRepo := repository.NewInvestmentRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	admin := seedUser(ctx, userRepo, "Admin User", "admin@example.com", model.RoleAdmin, "Management")
	manager := seedUser(ctx, userRepo, "Manager User", "manager@example.com", model.RoleManager, "Operations")
	employee := seedUser(ctx, userRepo, "Employee User", "employee@example.com", model.RoleEmployee, "Engineering")

	now := time.Now()
	projects := []model.Project{
		{
			Name:            "Website Redesign",
			Description:     "Full redesign of the corporate website",
			Source:          "Nadeem & sons",
			Type:            model.ProjectTypeClient,
			Budget:          decimal.NewFromInt(250000),
			StartDate:       now.AddDate(0, -3, 0),
			AssignedMembers: []uuid.UUID{manager.ID, employee.ID},
			Status:          model.ProjectStatusOngoing,
			Progress:        60,
			CreatedBy:       admin.ID,
		},
		{
			Name:        "Inventory System",
			Description: "Internal stock tracking tool",
			Source:      "Internal initiative",
			Type:        model.ProjectTypeInternal,
			Budget:      decimal.NewFromInt(80000),
			StartDate:   now.AddDate(0, -6, 0),
			Status:      model.ProjectStatusCompleted,
			Progress:    100,
			CreatedBy:   admin.ID,
		},
		{
			Name:      "Road Survey",
			Source:    "City council",
			Type:      model.ProjectTypeGovernment,
			Budget:    decimal.NewFromInt(500000),
			StartDate: now.AddDate(0, -1, 0),
			Status:    model.ProjectStatusPending,
			CreatedBy: manager.ID,
		},
	}
	for i := range projects {
		if err := projectRepo.Create(ctx, &projects[i]); err != nil {
			log.Printf("Skipping project %q: %v", projects[i].Name, err)
		}
	}
	log.Printf("Seeded %d projects", len(projects))

	investments := []model.Investment{
		{
			Code:      "INV-1001",
			Source:    "Nadeem & sons",
			Amount:    decimal.NewFromInt(150000),
			Date:      now.AddDate(0, -2, 0),
			Status:    model.InvestmentStatusActive,
			CreatedBy: admin.ID,
		},
		{
			Code:      "INV-1002",
			Source:    "Angel round",
			Amount:    decimal.NewFromInt(75000),
			Date:      now.AddDate(0, -4, 0),
			Status:    model.InvestmentStatusCompleted,
			CreatedBy: admin.ID,
		},
		{
			Code:      "INV-1003",
			Source:    "Bank partnership",
			Amount:    decimal.NewFromInt(320000),
			Date:      now.AddDate(0, 0, -10),
			Status:    model.InvestmentStatusActive,
			CreatedBy: manager.ID,
		},
	}
	for i := range investments {
		if err := investmentRepo.Create(ctx, &investments[i]); err != nil {
			log.Printf("Skipping investment %q: %v", investments[i].Code, err)
		}
	}
	log.Printf("Seeded %d investments", len(investments))

	expenses := []model.Expense{
		{
			Name:      "Office rent",
			Amount:    decimal.NewFromInt(45000),
			Category:  model.ExpenseCategoryRent,
			Date:      time.Date(now.Year(), time.July, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy: admin.ID,
		},
		{
			Name:      "Electricity bill",
			Amount:    decimal.NewFromInt(6000),
			Category:  model.ExpenseCategoryUtility,
			Date:      now.AddDate(0, 0, -15),
			CreatedBy: manager.ID,
		},
		{
			Name:      "Laptops",
			Amount:    decimal.NewFromInt(28000),
			Category:  model.ExpenseCategoryEquipment,
			Date:      now.AddDate(0, -1, 0),
			CreatedBy: admin.ID,
		},
	}
	for i := range expenses {
		if err := expenseRepo.Create(ctx, &expenses[i]); err != nil {
			log.Printf("Skipping expense %q: %v", expenses[i].Name, err)
		}
	}
	log.Printf("Seeded %d expenses", len(expenses))

	log.Println("Seed completed")
}

func seedUser(ctx context.Context, repo repository.UserRepository, name, email, role, department string) *model.User {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("User %s already exists, skipping", email)
		return existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check user %s: %v", email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Department:   department,
		Active:       true,
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}
	log.Printf("Created %s user %s", role, email)
	return user
}
