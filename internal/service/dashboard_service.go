package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/cache"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = time.Minute
	recentItemCount   = 5
	trendMonths       = 6
)

// DashboardSummary holds company-wide headline numbers.
type DashboardSummary struct {
	TotalUsers       int64           `json:"totalUsers"`
	TotalProjects    int64           `json:"totalProjects"`
	ActiveProjects   int64           `json:"activeProjects"`
	TotalInvestments decimal.Decimal `json:"totalInvestments"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetBalance       decimal.Decimal `json:"netBalance"`
}

// DashboardStats is the summary plus the most recent records of each kind.
type DashboardStats struct {
	Summary           DashboardSummary   `json:"summary"`
	RecentProjects    []model.Project    `json:"recentProjects"`
	RecentInvestments []model.Investment `json:"recentInvestments"`
	RecentExpenses    []model.Expense    `json:"recentExpenses"`
}

// MonthlyComparison pairs investment and expense totals for one month.
type MonthlyComparison struct {
	Month       string          `json:"month"`
	Investments decimal.Decimal `json:"investments"`
	Expenses    decimal.Decimal `json:"expenses"`
}

// DashboardCharts groups the aggregates the frontend renders as charts.
type DashboardCharts struct {
	ProjectsByStatus    []repository.BudgetBreakdown `json:"projectsByStatus"`
	InvestmentsByStatus []repository.StatusTotal     `json:"investmentsByStatus"`
	ExpensesByCategory  []repository.CategoryTotal   `json:"expensesByCategory"`
	MonthlyComparison   []MonthlyComparison          `json:"monthlyComparison"`
}

// DashboardService assembles cross-entity overview data.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	Charts(ctx context.Context) (*DashboardCharts, error)
}

type dashboardService struct {
	users       repository.UserRepository
	projects    repository.ProjectRepository
	investments repository.InvestmentRepository
	expenses    repository.ExpenseRepository
	cache       *cache.Client
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	investments repository.InvestmentRepository,
	expenses repository.ExpenseRepository,
	cache *cache.Client,
) DashboardService {
	return &dashboardService{
		users:       users,
		projects:    projects,
		investments: investments,
		expenses:    expenses,
		cache:       cache,
		now:         time.Now,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, dashboardCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	projectCount, err := s.projects.Count(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	activeProjects, err := s.projects.Count(ctx, repository.ProjectFilter{Status: model.ProjectStatusOngoing})
	if err != nil {
		return nil, err
	}
	totalInvestments, err := s.investments.Sum(ctx, repository.InvestmentFilter{})
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.expenses.Sum(ctx, repository.ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	recentProjects, err := s.projects.Find(ctx, repository.ProjectFilter{SortRecent: true, Limit: recentItemCount})
	if err != nil {
		return nil, err
	}
	recentInvestments, err := s.investments.Find(ctx, repository.InvestmentFilter{SortByDate: true, Limit: recentItemCount})
	if err != nil {
		return nil, err
	}
	recentExpenses, err := s.expenses.Find(ctx, repository.ExpenseFilter{SortByDate: true, Limit: recentItemCount})
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Summary: DashboardSummary{
			TotalUsers:       userCount,
			TotalProjects:    projectCount,
			ActiveProjects:   activeProjects,
			TotalInvestments: totalInvestments,
			TotalExpenses:    totalExpenses,
			NetBalance:       totalInvestments.Sub(totalExpenses),
		},
		RecentProjects:    recentProjects,
		RecentInvestments: recentInvestments,
		RecentExpenses:    recentExpenses,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
	}
	return stats, nil
}

func (s *dashboardService) Charts(ctx context.Context) (*DashboardCharts, error) {
	projectsByStatus, err := s.projects.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	investmentsByStatus, err := s.investments.StatusTotals(ctx)
	if err != nil {
		return nil, err
	}
	expensesByCategory, err := s.expenses.CategoryTotals(ctx)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, -trendMonths, 0)
	investmentMonths, err := s.investments.MonthlyTotals(ctx, since)
	if err != nil {
		return nil, err
	}
	expenseMonths, err := s.expenses.MonthlyTotals(ctx, since)
	if err != nil {
		return nil, err
	}

	return &DashboardCharts{
		ProjectsByStatus:    projectsByStatus,
		InvestmentsByStatus: investmentsByStatus,
		ExpensesByCategory:  expensesByCategory,
		MonthlyComparison:   mergeMonthly(investmentMonths, expenseMonths),
	}, nil
}

// mergeMonthly joins two monthly series on month, keeping chronological order.
func mergeMonthly(investments, expenses []repository.MonthlyTotal) []MonthlyComparison {
	byMonth := make(map[string]*MonthlyComparison)
	var order []string

	for _, row := range investments {
		byMonth[row.Month] = &MonthlyComparison{
			Month:       row.Month,
			Investments: row.Total,
			Expenses:    decimal.Zero,
		}
		order = append(order, row.Month)
	}
	for _, row := range expenses {
		if entry, ok := byMonth[row.Month]; ok {
			entry.Expenses = row.Total
			continue
		}
		byMonth[row.Month] = &MonthlyComparison{
			Month:       row.Month,
			Investments: decimal.Zero,
			Expenses:    row.Total,
		}
		order = append(order, row.Month)
	}

	// "YYYY-MM" strings sort correctly lexicographically.
	sort.Strings(order)
	merged := make([]MonthlyComparison, 0, len(order))
	for _, month := range order {
		merged = append(merged, *byMonth[month])
	}
	return merged
}
