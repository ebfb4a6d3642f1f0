package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// mockProjectRepo is a mock implementation of repository.ProjectRepository.
type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepo) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectRepo) Find(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *mockProjectRepo) Count(ctx context.Context, filter repository.ProjectFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProjectRepo) StatusBreakdown(ctx context.Context) ([]repository.BudgetBreakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BudgetBreakdown), args.Error(1)
}

func (m *mockProjectRepo) TypeBreakdown(ctx context.Context) ([]repository.BudgetBreakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BudgetBreakdown), args.Error(1)
}

func (m *mockProjectRepo) SourceBreakdown(ctx context.Context, limit int) ([]repository.BudgetBreakdown, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BudgetBreakdown), args.Error(1)
}

// mockInvestmentRepo is a mock implementation of repository.InvestmentRepository.
type mockInvestmentRepo struct {
	mock.Mock
}

func (m *mockInvestmentRepo) Create(ctx context.Context, investment *model.Investment) error {
	args := m.Called(ctx, investment)
	return args.Error(0)
}

func (m *mockInvestmentRepo) Update(ctx context.Context, investment *model.Investment) error {
	args := m.Called(ctx, investment)
	return args.Error(0)
}

func (m *mockInvestmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockInvestmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Investment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Investment), args.Error(1)
}

func (m *mockInvestmentRepo) Find(ctx context.Context, filter repository.InvestmentFilter) ([]model.Investment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Investment), args.Error(1)
}

func (m *mockInvestmentRepo) Count(ctx context.Context, filter repository.InvestmentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInvestmentRepo) Sum(ctx context.Context, filter repository.InvestmentFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockInvestmentRepo) StatusTotals(ctx context.Context) ([]repository.StatusTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StatusTotal), args.Error(1)
}

func (m *mockInvestmentRepo) MonthlyTotals(ctx context.Context, since time.Time) ([]repository.MonthlyTotal, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthlyTotal), args.Error(1)
}

// mockExpenseRepo is a mock implementation of repository.ExpenseRepository.
type mockExpenseRepo struct {
	mock.Mock
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepo) Update(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockExpenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *mockExpenseRepo) Find(ctx context.Context, filter repository.ExpenseFilter) ([]model.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *mockExpenseRepo) Count(ctx context.Context, filter repository.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockExpenseRepo) Sum(ctx context.Context, filter repository.ExpenseFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockExpenseRepo) CategoryTotals(ctx context.Context) ([]repository.CategoryTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryTotal), args.Error(1)
}

func (m *mockExpenseRepo) MonthlyTotals(ctx context.Context, since time.Time) ([]repository.MonthlyTotal, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthlyTotal), args.Error(1)
}

// mockUserRepo is a mock implementation of repository.UserRepository.
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, limit int) ([]model.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// stubEnricher returns a fixed response or error.
type stubEnricher struct {
	text string
	err  error
}

func (s *stubEnricher) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func newTestInterpreter() (*Interpreter, *mockProjectRepo, *mockInvestmentRepo, *mockExpenseRepo, *mockUserRepo) {
	projects := new(mockProjectRepo)
	investments := new(mockInvestmentRepo)
	expenses := new(mockExpenseRepo)
	users := new(mockUserRepo)
	interp := NewInterpreter(projects, investments, expenses, users, nil)
	return interp, projects, investments, expenses, users
}

func TestInterpret_ProjectBySource(t *testing.T) {
	interp, projects, _, _, _ := newTestInterpreter()

	fixture := []model.Project{{Name: "Website Redesign"}, {Name: "Mobile App"}}
	projects.On("Find", mock.Anything, repository.ProjectFilter{SourceContains: "Nadeem & sons"}).
		Return(fixture, nil)

	env, err := interp.Interpret(context.Background(), "Show projects from Nadeem & sons", Caller{})

	assert.NoError(t, err)
	assert.Equal(t, TypeProjects, env.Type)
	assert.Equal(t, `Found 2 project(s) from "Nadeem & sons"`, env.Message)
	assert.Equal(t, "Show projects from Nadeem & sons", env.Query)
	assert.Equal(t, fixture, env.Data)
	projects.AssertExpectations(t)
}

func TestInterpret_ProjectBySourceMissingName(t *testing.T) {
	interp, projects, _, _, _ := newTestInterpreter()

	env, err := interp.Interpret(context.Background(), "projects from 99", Caller{})

	assert.NoError(t, err)
	assert.Equal(t, TypeProjects, env.Type)
	assert.Nil(t, env.Data)
	assert.Equal(t, "Could not find a source name in the query", env.Message)
	projects.AssertNotCalled(t, "Find")
}

func TestInterpret_InvestmentThreshold(t *testing.T) {
	interp, _, investments, _, _ := newTestInterpreter()

	fixture := []model.Investment{
		{Code: "INV-1", Amount: decimal.NewFromInt(150000)},
		{Code: "INV-2", Amount: decimal.NewFromInt(320000)},
		{Code: "INV-3", Amount: decimal.NewFromInt(110000)},
	}
	investments.On("Find", mock.Anything, mock.MatchedBy(func(f repository.InvestmentFilter) bool {
		return f.MinAmount != nil && f.MinAmount.Equal(decimal.NewFromInt(100000))
	})).Return(fixture, nil)

	env, err := interp.Interpret(context.Background(), "List investments above 100,000", Caller{})

	assert.NoError(t, err)
	assert.Equal(t, TypeInvestments, env.Type)
	assert.Equal(t, "Found 3 investment(s) above 100000", env.Message)
	assert.Equal(t, fixture, env.Data)
	investments.AssertExpectations(t)
}

func TestInterpret_RentInMonth(t *testing.T) {
	interp, _, _, expenses, _ := newTestInterpreter()
	interp.now = func() time.Time {
		return time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	}

	start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	fixture := []model.Expense{
		{Name: "Office rent", Amount: decimal.NewFromInt(30000)},
		{Name: "Warehouse rent", Amount: decimal.NewFromInt(15000)},
	}
	expenses.On("Find", mock.Anything, repository.ExpenseFilter{
		Category: model.ExpenseCategoryRent,
		DateFrom: &start,
		DateTo:   &end,
	}).Return(fixture, nil)

	env, err := interp.Interpret(context.Background(), "How much rent in july?", Caller{})

	assert.NoError(t, err)
	assert.Equal(t, TypeExpenses, env.Type)
	assert.Equal(t, "Total rent in july: $45,000", env.Message)
	assert.Equal(t, fixture, env.Data)
	expenses.AssertExpectations(t)
}

func TestInterpret_Summary(t *testing.T) {
	interp, projects, investments, expenses, users := newTestInterpreter()

	investments.On("Sum", mock.Anything, repository.InvestmentFilter{}).
		Return(decimal.NewFromInt(545000), nil)
	expenses.On("Sum", mock.Anything, repository.ExpenseFilter{}).
		Return(decimal.NewFromInt(79000), nil)
	projects.On("Count", mock.Anything, repository.ProjectFilter{}).
		Return(int64(3), nil)
	projects.On("Count", mock.Anything, repository.ProjectFilter{Status: model.ProjectStatusOngoing}).
		Return(int64(1), nil)
	users.On("Count", mock.Anything).Return(int64(5), nil)

	env, err := interp.Interpret(context.Background(), "Give me an overview", Caller{})

	assert.NoError(t, err)
	assert.Equal(t, TypeSummary, env.Type)
	assert.Equal(t, "Company overview summary", env.Message)

	summary, ok := env.Data.(*Summary)
	assert.True(t, ok)
	assert.True(t, summary.TotalInvestments.Equal(decimal.NewFromInt(545000)))
	assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromInt(79000)))
	assert.Equal(t, int64(3), summary.ProjectCount)
	assert.Equal(t, int64(1), summary.ActiveProjects)
	assert.Equal(t, int64(5), summary.UserCount)
	assert.True(t, summary.NetBalance.Equal(decimal.NewFromInt(466000)))
}

func TestInterpret_SummaryZero(t *testing.T) {
	interp, projects, investments, expenses, users := newTestInterpreter()

	investments.On("Sum", mock.Anything, repository.InvestmentFilter{}).Return(decimal.Zero, nil)
	expenses.On("Sum", mock.Anything, repository.ExpenseFilter{}).Return(decimal.Zero, nil)
	projects.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	users.On("Count", mock.Anything).Return(int64(0), nil)

	env, err := interp.Interpret(context.Background(), "dashboard overview", Caller{})

	assert.NoError(t, err)
	summary := env.Data.(*Summary)
	assert.True(t, summary.NetBalance.IsZero())
}

func TestInterpret_Unrecognized(t *testing.T) {
	interp, _, _, _, _ := newTestInterpreter()

	env, err := interp.Interpret(context.Background(), "  what is the weather  ", Caller{})

	assert.NoError(t, err)
	assert.Equal(t, TypeGeneral, env.Type)
	assert.Nil(t, env.Data)
	assert.Equal(t, helpMessage, env.Message)
	assert.Equal(t, "what is the weather", env.Query)
	assert.Empty(t, env.AIResponse)
}

// The same query asked twice yields the same classification and message.
func TestInterpret_Idempotent(t *testing.T) {
	interp, _, _, expenses, _ := newTestInterpreter()

	expenses.On("Find", mock.Anything, mock.Anything).Return([]model.Expense{}, nil)

	first, err := interp.Interpret(context.Background(), "show expenses", Caller{})
	assert.NoError(t, err)
	second, err := interp.Interpret(context.Background(), "show expenses", Caller{})
	assert.NoError(t, err)

	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, first.Message, second.Message)
}

func TestInterpret_RepositoryError(t *testing.T) {
	interp, projects, _, _, _ := newTestInterpreter()

	projects.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	env, err := interp.Interpret(context.Background(), "show active projects", Caller{})

	assert.Error(t, err)
	assert.Nil(t, env)
}

func TestInterpret_EnrichmentSuccess(t *testing.T) {
	interp, _, _, expenses, _ := newTestInterpreter()
	interp.enricher = &stubEnricher{text: "Here are your latest expenses."}

	expenses.On("Find", mock.Anything, mock.Anything).Return([]model.Expense{}, nil)

	env, err := interp.Interpret(context.Background(), "show expenses", Caller{})

	assert.NoError(t, err)
	assert.Equal(t, "Here are your latest expenses.", env.AIResponse)
	assert.Equal(t, "Showing recent expenses", env.Message)
}

// Enrichment failures never disturb the primary result.
func TestInterpret_EnrichmentFailure(t *testing.T) {
	interp, _, _, expenses, _ := newTestInterpreter()
	interp.enricher = &stubEnricher{err: errors.New("model unavailable")}

	fixture := []model.Expense{{Name: "Electricity bill"}}
	expenses.On("Find", mock.Anything, mock.Anything).Return(fixture, nil)

	env, err := interp.Interpret(context.Background(), "show expenses", Caller{})

	assert.NoError(t, err)
	assert.Empty(t, env.AIResponse)
	assert.Equal(t, TypeExpenses, env.Type)
	assert.Equal(t, "Showing recent expenses", env.Message)
	assert.Equal(t, fixture, env.Data)
}
