package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// InvestmentUpdate carries partial investment changes; nil fields are left untouched.
type InvestmentUpdate struct {
	Source      *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Status      *model.InvestmentStatus
	Description *string
}

// InvestmentStats aggregates investment totals.
type InvestmentStats struct {
	TotalCount      int64                     `json:"totalCount"`
	TotalAmount     decimal.Decimal           `json:"totalAmount"`
	StatusBreakdown []repository.StatusTotal  `json:"statusBreakdown"`
	MonthlyTrend    []repository.MonthlyTotal `json:"monthlyTrend"`
}

// InvestmentService exposes investment management operations.
type InvestmentService interface {
	CreateInvestment(ctx context.Context, actor Actor, investment *model.Investment) (*model.Investment, error)
	GetInvestment(ctx context.Context, id uuid.UUID) (*model.Investment, error)
	ListInvestments(ctx context.Context, filter repository.InvestmentFilter) ([]model.Investment, error)
	UpdateInvestment(ctx context.Context, id uuid.UUID, update InvestmentUpdate) (*model.Investment, error)
	DeleteInvestment(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*InvestmentStats, error)
}

type investmentService struct {
	repo repository.InvestmentRepository
	now  func() time.Time
}

// NewInvestmentService creates a new investment service.
func NewInvestmentService(repo repository.InvestmentRepository) InvestmentService {
	return &investmentService{repo: repo, now: time.Now}
}

func (s *investmentService) CreateInvestment(ctx context.Context, actor Actor, investment *model.Investment) (*model.Investment, error) {
	if investment.Amount.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}
	if investment.Status == "" {
		investment.Status = model.InvestmentStatusActive
	}
	if investment.Code == "" {
		investment.Code = fmt.Sprintf("INV-%d", s.now().UnixMilli())
	}
	investment.CreatedBy = actor.ID
	if err := s.repo.Create(ctx, investment); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, investment.ID)
}

func (s *investmentService) GetInvestment(ctx context.Context, id uuid.UUID) (*model.Investment, error) {
	investment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, err
	}
	return investment, nil
}

func (s *investmentService) ListInvestments(ctx context.Context, filter repository.InvestmentFilter) ([]model.Investment, error) {
	filter.SortByDate = true
	return s.repo.Find(ctx, filter)
}

func (s *investmentService) UpdateInvestment(ctx context.Context, id uuid.UUID, update InvestmentUpdate) (*model.Investment, error) {
	investment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, err
	}

	if update.Source != nil {
		investment.Source = *update.Source
	}
	if update.Amount != nil {
		if update.Amount.IsNegative() {
			return nil, apperrors.ErrInvalidAmount
		}
		investment.Amount = *update.Amount
	}
	if update.Date != nil {
		investment.Date = *update.Date
	}
	if update.Status != nil {
		investment.Status = *update.Status
	}
	if update.Description != nil {
		investment.Description = *update.Description
	}

	if err := s.repo.Update(ctx, investment); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *investmentService) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrInvestmentNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *investmentService) Stats(ctx context.Context) (*InvestmentStats, error) {
	count, err := s.repo.Count(ctx, repository.InvestmentFilter{})
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Sum(ctx, repository.InvestmentFilter{})
	if err != nil {
		return nil, err
	}
	statusTotals, err := s.repo.StatusTotals(ctx)
	if err != nil {
		return nil, err
	}
	since := s.now().AddDate(0, -6, 0)
	monthly, err := s.repo.MonthlyTotals(ctx, since)
	if err != nil {
		return nil, err
	}
	return &InvestmentStats{
		TotalCount:      count,
		TotalAmount:     total,
		StatusBreakdown: statusTotals,
		MonthlyTrend:    monthly,
	}, nil
}
