package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// Response types attached to envelopes.
const (
	TypeProjects    = "projects"
	TypeInvestments = "investments"
	TypeExpenses    = "expenses"
	TypeUsers       = "users"
	TypeSummary     = "summary"
	TypeGeneral     = "general"
)

const (
	recentLimit      = 10
	userListingLimit = 20
	enrichTimeout    = 10 * time.Second
)

const helpMessage = "I can help you with:\n" +
	"- Projects (e.g., \"Show projects from Nadeem & sons\")\n" +
	"- Investments (e.g., \"List active investments above 100000\")\n" +
	"- Expenses (e.g., \"How much rent in July?\")\n" +
	"- Users (e.g., \"Show all members\")\n" +
	"- Summary (e.g., \"Give me an overview\")"

// Caller identifies the authenticated user issuing the query. No current
// intent filters by caller, but the identity is threaded through for
// per-role filtering later.
type Caller struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// Envelope is the uniform response shape for every interpreted query.
type Envelope struct {
	Data       interface{} `json:"data"`
	Type       string      `json:"type"`
	Message    string      `json:"message"`
	Query      string      `json:"query"`
	AIResponse string      `json:"aiResponse,omitempty"`
}

// Summary is the aggregate payload for overview queries.
type Summary struct {
	TotalInvestments decimal.Decimal `json:"totalInvestments"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	ProjectCount     int64           `json:"projectCount"`
	ActiveProjects   int64           `json:"activeProjects"`
	UserCount        int64           `json:"userCount"`
	NetBalance       decimal.Decimal `json:"netBalance"`
}

// Interpreter classifies queries, extracts parameters and dispatches the
// matching filtered read against the repositories. Safe for concurrent use;
// it holds no per-request state.
type Interpreter struct {
	projects    repository.ProjectRepository
	investments repository.InvestmentRepository
	expenses    repository.ExpenseRepository
	users       repository.UserRepository
	enricher    Enricher
	now         func() time.Time
}

// NewInterpreter wires the interpreter to its data sources. enricher may be
// nil, which disables AI enrichment.
func NewInterpreter(
	projects repository.ProjectRepository,
	investments repository.InvestmentRepository,
	expenses repository.ExpenseRepository,
	users repository.UserRepository,
	enricher Enricher,
) *Interpreter {
	return &Interpreter{
		projects:    projects,
		investments: investments,
		expenses:    expenses,
		users:       users,
		enricher:    enricher,
		now:         time.Now,
	}
}

// Interpret runs the full pipeline for one query and returns the response
// envelope. Data-access failures propagate; enrichment failures never do.
func (i *Interpreter) Interpret(ctx context.Context, query string, caller Caller) (*Envelope, error) {
	trimmed := strings.TrimSpace(query)
	env, err := i.dispatch(ctx, Classify(strings.ToLower(trimmed)), trimmed)
	if err != nil {
		return nil, err
	}
	env.Query = trimmed
	i.enrich(ctx, trimmed, env)
	return env, nil
}

func (i *Interpreter) dispatch(ctx context.Context, intent Intent, query string) (*Envelope, error) {
	switch intent {
	case IntentProjectBySource:
		source, ok := ExtractSource(query)
		if !ok {
			// No extractable source: empty result, not an error.
			return &Envelope{Type: TypeProjects, Message: "Could not find a source name in the query"}, nil
		}
		projects, err := i.projects.Find(ctx, repository.ProjectFilter{SourceContains: source})
		if err != nil {
			return nil, err
		}
		return &Envelope{
			Data:    projects,
			Type:    TypeProjects,
			Message: fmt.Sprintf("Found %d project(s) from %q", len(projects), source),
		}, nil

	case IntentProjectActive:
		projects, err := i.projects.Find(ctx, repository.ProjectFilter{Status: model.ProjectStatusOngoing})
		if err != nil {
			return nil, err
		}
		return &Envelope{
			Data:    projects,
			Type:    TypeProjects,
			Message: fmt.Sprintf("Found %d active project(s)", len(projects)),
		}, nil

	case IntentProjectCompleted:
		projects, err := i.projects.Find(ctx, repository.ProjectFilter{Status: model.ProjectStatusCompleted})
		if err != nil {
			return nil, err
		}
		return &Envelope{
			Data:    projects,
			Type:    TypeProjects,
			Message: fmt.Sprintf("Found %d completed project(s)", len(projects)),
		}, nil

	case IntentProjectRecent:
		projects, err := i.projects.Find(ctx, repository.ProjectFilter{SortRecent: true, Limit: recentLimit})
		if err != nil {
			return nil, err
		}
		return &Envelope{Data: projects, Type: TypeProjects, Message: "Showing recent projects"}, nil

	case IntentInvestmentThreshold:
		threshold, ok := ExtractThreshold(query)
		if !ok {
			return &Envelope{Type: TypeInvestments, Message: "Could not find an amount in the query"}, nil
		}
		min := decimal.NewFromInt(threshold)
		investments, err := i.investments.Find(ctx, repository.InvestmentFilter{MinAmount: &min})
		if err != nil {
			return nil, err
		}
		return &Envelope{
			Data:    investments,
			Type:    TypeInvestments,
			Message: fmt.Sprintf("Found %d investment(s) above %d", len(investments), threshold),
		}, nil

	case IntentInvestmentActive:
		investments, err := i.investments.Find(ctx, repository.InvestmentFilter{Status: model.InvestmentStatusActive})
		if err != nil {
			return nil, err
		}
		return &Envelope{
			Data:    investments,
			Type:    TypeInvestments,
			Message: fmt.Sprintf("Found %d active investment(s)", len(investments)),
		}, nil

	case IntentInvestmentRecent:
		investments, err := i.investments.Find(ctx, repository.InvestmentFilter{SortByDate: true, Limit: recentLimit})
		if err != nil {
			return nil, err
		}
		return &Envelope{Data: investments, Type: TypeInvestments, Message: "Showing recent investments"}, nil

	case IntentExpenseRentMonth:
		month, name, ok := ExtractMonth(query)
		if !ok {
			// Classifier guarantees a month, but degrade like the other
			// extraction misses if that invariant is ever broken.
			return &Envelope{Type: TypeExpenses, Message: "Could not find a month in the query"}, nil
		}
		start := time.Date(i.now().Year(), month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		expenses, err := i.expenses.Find(ctx, repository.ExpenseFilter{
			Category: model.ExpenseCategoryRent,
			DateFrom: &start,
			DateTo:   &end,
		})
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		for _, e := range expenses {
			total = total.Add(e.Amount)
		}
		return &Envelope{
			Data:    expenses,
			Type:    TypeExpenses,
			Message: fmt.Sprintf("Total rent in %s: $%s", name, formatAmount(total)),
		}, nil

	case IntentExpenseRentRecent:
		expenses, err := i.expenses.Find(ctx, repository.ExpenseFilter{
			Category:   model.ExpenseCategoryRent,
			SortByDate: true,
			Limit:      recentLimit,
		})
		if err != nil {
			return nil, err
		}
		return &Envelope{Data: expenses, Type: TypeExpenses, Message: "Showing rent expenses"}, nil

	case IntentExpenseUtility:
		expenses, err := i.expenses.Find(ctx, repository.ExpenseFilter{
			Category:   model.ExpenseCategoryUtility,
			SortByDate: true,
			Limit:      recentLimit,
		})
		if err != nil {
			return nil, err
		}
		return &Envelope{Data: expenses, Type: TypeExpenses, Message: "Showing utility expenses"}, nil

	case IntentExpenseRecent:
		expenses, err := i.expenses.Find(ctx, repository.ExpenseFilter{SortByDate: true, Limit: recentLimit})
		if err != nil {
			return nil, err
		}
		return &Envelope{Data: expenses, Type: TypeExpenses, Message: "Showing recent expenses"}, nil

	case IntentUserListing:
		users, err := i.users.List(ctx, userListingLimit)
		if err != nil {
			return nil, err
		}
		return &Envelope{
			Data:    users,
			Type:    TypeUsers,
			Message: fmt.Sprintf("Found %d user(s)", len(users)),
		}, nil

	case IntentSummary:
		summary, err := i.summarize(ctx)
		if err != nil {
			return nil, err
		}
		return &Envelope{Data: summary, Type: TypeSummary, Message: "Company overview summary"}, nil

	default:
		return &Envelope{Type: TypeGeneral, Message: helpMessage}, nil
	}
}

func (i *Interpreter) summarize(ctx context.Context) (*Summary, error) {
	totalInvestments, err := i.investments.Sum(ctx, repository.InvestmentFilter{})
	if err != nil {
		return nil, err
	}
	totalExpenses, err := i.expenses.Sum(ctx, repository.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	projectCount, err := i.projects.Count(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	activeProjects, err := i.projects.Count(ctx, repository.ProjectFilter{Status: model.ProjectStatusOngoing})
	if err != nil {
		return nil, err
	}
	userCount, err := i.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalInvestments: totalInvestments,
		TotalExpenses:    totalExpenses,
		ProjectCount:     projectCount,
		ActiveProjects:   activeProjects,
		UserCount:        userCount,
		NetBalance:       totalInvestments.Sub(totalExpenses),
	}, nil
}

// enrich asks the optional text-generation capability to phrase a reply
// around the computed data. Failures are logged and swallowed; the primary
// result is never altered.
func (i *Interpreter) enrich(ctx context.Context, query string, env *Envelope) {
	if i.enricher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, enrichTimeout)
	defer cancel()

	payload, err := json.Marshal(env.Data)
	if err != nil {
		payload = []byte("null")
	}
	prompt := fmt.Sprintf("Query: %s\nData: %s\nProvide a helpful response.", query, payload)

	text, err := i.enricher.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: enrichment failed, returning data only: %v", err)
		return
	}
	env.AIResponse = text
}
