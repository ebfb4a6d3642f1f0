package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice/internal/model"
)

// ExpenseFilter narrows expense queries. Zero values mean "no restriction".
// Date bounds select the half-open range [DateFrom, DateTo).
type ExpenseFilter struct {
	Category   string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortByDate bool // order by date descending
	Limit      int
}

// CategoryTotal is a grouped count/amount aggregate row keyed by category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// ExpenseRepository defines expense persistence operations.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	Find(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)
	Sum(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context) ([]CategoryTotal, error)
	MonthlyTotals(ctx context.Context, since time.Time) ([]MonthlyTotal, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).Preload("Creator", creatorFields).
		Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Find(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Expense{}), filter).
		Preload("Creator", creatorFields)
	if filter.SortByDate {
		q = q.Order("date DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var expenses []model.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Count(ctx context.Context, filter ExpenseFilter) (int64, error) {
	var count int64
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Expense{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *expenseRepository) Sum(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Expense{}), filter).
		Select("COALESCE(SUM(amount), 0)")
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *expenseRepository) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("category, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("category").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expenseRepository) MonthlyTotals(ctx context.Context, since time.Time) ([]MonthlyTotal, error) {
	var rows []MonthlyTotal
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("DATE_FORMAT(date, '%Y-%m') AS month, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ?", since).
		Group("DATE_FORMAT(date, '%Y-%m')").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expenseRepository) applyFilter(q *gorm.DB, filter ExpenseFilter) *gorm.DB {
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date < ?", *filter.DateTo)
	}
	return q
}
