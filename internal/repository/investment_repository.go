package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice/internal/model"
)

// InvestmentFilter narrows investment queries. Zero values mean "no restriction".
// Date bounds select the half-open range [DateFrom, DateTo).
type InvestmentFilter struct {
	SourceContains string
	Status         model.InvestmentStatus
	MinAmount      *decimal.Decimal // amount >= MinAmount
	DateFrom       *time.Time
	DateTo         *time.Time
	SortByDate     bool // order by date descending
	Limit          int
}

// StatusTotal is a grouped count/amount aggregate row keyed by status.
type StatusTotal struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// MonthlyTotal is a per-month amount aggregate row. Month is "YYYY-MM".
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// InvestmentRepository defines investment persistence operations.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *model.Investment) error
	Update(ctx context.Context, investment *model.Investment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Investment, error)
	Find(ctx context.Context, filter InvestmentFilter) ([]model.Investment, error)
	Count(ctx context.Context, filter InvestmentFilter) (int64, error)
	Sum(ctx context.Context, filter InvestmentFilter) (decimal.Decimal, error)
	StatusTotals(ctx context.Context) ([]StatusTotal, error)
	MonthlyTotals(ctx context.Context, since time.Time) ([]MonthlyTotal, error)
}

type investmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository.
func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) Create(ctx context.Context, investment *model.Investment) error {
	return r.db.WithContext(ctx).Create(investment).Error
}

func (r *investmentRepository) Update(ctx context.Context, investment *model.Investment) error {
	return r.db.WithContext(ctx).Save(investment).Error
}

func (r *investmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Investment{}, "id = ?", id).Error
}

func (r *investmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Investment, error) {
	var investment model.Investment
	if err := r.db.WithContext(ctx).Preload("Creator", creatorFields).
		Where("id = ?", id).First(&investment).Error; err != nil {
		return nil, err
	}
	return &investment, nil
}

func (r *investmentRepository) Find(ctx context.Context, filter InvestmentFilter) ([]model.Investment, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Investment{}), filter).
		Preload("Creator", creatorFields)
	if filter.SortByDate {
		q = q.Order("date DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var investments []model.Investment
	if err := q.Find(&investments).Error; err != nil {
		return nil, err
	}
	return investments, nil
}

func (r *investmentRepository) Count(ctx context.Context, filter InvestmentFilter) (int64, error) {
	var count int64
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Investment{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *investmentRepository) Sum(ctx context.Context, filter InvestmentFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Investment{}), filter).
		Select("COALESCE(SUM(amount), 0)")
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *investmentRepository) StatusTotals(ctx context.Context) ([]StatusTotal, error) {
	var rows []StatusTotal
	err := r.db.WithContext(ctx).Model(&model.Investment{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *investmentRepository) MonthlyTotals(ctx context.Context, since time.Time) ([]MonthlyTotal, error) {
	var rows []MonthlyTotal
	err := r.db.WithContext(ctx).Model(&model.Investment{}).
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

func (r *investmentRepository) applyFilter(q *gorm.DB, filter InvestmentFilter) *gorm.DB {
	if filter.SourceContains != "" {
		q = q.Where("LOWER(source) LIKE ?", "%"+strings.ToLower(filter.SourceContains)+"%")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinAmount != nil {
		q = q.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date < ?", *filter.DateTo)
	}
	return q
}
