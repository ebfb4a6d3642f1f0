package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// ExpenseUpdate carries partial expense changes; nil fields are left untouched.
type ExpenseUpdate struct {
	Name        *string
	Amount      *decimal.Decimal
	Category    *string
	Date        *time.Time
	Description *string
}

// ExpenseStats aggregates expense totals.
type ExpenseStats struct {
	TotalCount        int64                      `json:"totalCount"`
	TotalAmount       decimal.Decimal            `json:"totalAmount"`
	CategoryBreakdown []repository.CategoryTotal `json:"categoryBreakdown"`
	MonthlyTrend      []repository.MonthlyTotal  `json:"monthlyTrend"`
}

// ExpenseService exposes expense management operations.
type ExpenseService interface {
	CreateExpense(ctx context.Context, actor Actor, expense *model.Expense) (*model.Expense, error)
	GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	ListExpenses(ctx context.Context, filter repository.ExpenseFilter) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, update ExpenseUpdate) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ExpenseStats, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

// NewExpenseService creates a new expense service.
func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo, now: time.Now}
}

func (s *expenseService) CreateExpense(ctx context.Context, actor Actor, expense *model.Expense) (*model.Expense, error) {
	if expense.Amount.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}
	if expense.Category == "" {
		expense.Category = model.ExpenseCategoryOther
	}
	expense.CreatedBy = actor.ID
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, expense.ID)
}

func (s *expenseService) GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, filter repository.ExpenseFilter) ([]model.Expense, error) {
	filter.SortByDate = true
	return s.repo.Find(ctx, filter)
}

func (s *expenseService) UpdateExpense(ctx context.Context, id uuid.UUID, update ExpenseUpdate) (*model.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		expense.Name = *update.Name
	}
	if update.Amount != nil {
		if update.Amount.IsNegative() {
			return nil, apperrors.ErrInvalidAmount
		}
		expense.Amount = *update.Amount
	}
	if update.Category != nil {
		expense.Category = *update.Category
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}
	if update.Description != nil {
		expense.Description = *update.Description
	}

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *expenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrExpenseNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *expenseService) Stats(ctx context.Context) (*ExpenseStats, error) {
	count, err := s.repo.Count(ctx, repository.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Sum(ctx, repository.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.CategoryTotals(ctx)
	if err != nil {
		return nil, err
	}
	since := s.now().AddDate(0, -6, 0)
	monthly, err := s.repo.MonthlyTotals(ctx, since)
	if err != nil {
		return nil, err
	}
	return &ExpenseStats{
		TotalCount:        count,
		TotalAmount:       total,
		CategoryBreakdown: categories,
		MonthlyTrend:      monthly,
	}, nil
}
