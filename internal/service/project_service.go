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

// ProjectUpdate carries partial project changes; nil fields are left untouched.
type ProjectUpdate struct {
	Name            *string
	Description     *string
	Source          *string
	Type            *model.ProjectType
	Budget          *decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	AssignedMembers *[]uuid.UUID
	Status          *model.ProjectStatus
	Progress        *int
}

// ProjectStats aggregates project counts and budgets.
type ProjectStats struct {
	TotalProjects   int64                        `json:"totalProjects"`
	ActiveProjects  int64                        `json:"activeProjects"`
	StatusBreakdown []repository.BudgetBreakdown `json:"statusBreakdown"`
	TypeBreakdown   []repository.BudgetBreakdown `json:"typeBreakdown"`
	SourceBreakdown []repository.BudgetBreakdown `json:"sourceBreakdown"`
}

// ProjectService exposes project management operations. Employee actors only
// see projects they are assigned to.
type ProjectService interface {
	CreateProject(ctx context.Context, actor Actor, project *model.Project) (*model.Project, error)
	GetProject(ctx context.Context, actor Actor, id uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context, actor Actor, filter repository.ProjectFilter) ([]model.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, update ProjectUpdate) (*model.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ProjectStats, error)
}

type projectService struct {
	repo repository.ProjectRepository
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) CreateProject(ctx context.Context, actor Actor, project *model.Project) (*model.Project, error) {
	if project.Progress < 0 || project.Progress > 100 {
		return nil, apperrors.ErrInvalidProgress
	}
	if project.Budget.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}
	project.CreatedBy = actor.ID
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, project.ID)
}

func (s *projectService) GetProject(ctx context.Context, actor Actor, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	if actor.IsEmployee() && !project.AssignedTo(actor.ID) {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, actor Actor, filter repository.ProjectFilter) ([]model.Project, error) {
	filter.SortRecent = true
	projects, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !actor.IsEmployee() {
		return projects, nil
	}
	assigned := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.AssignedTo(actor.ID) {
			assigned = append(assigned, p)
		}
	}
	return assigned, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id uuid.UUID, update ProjectUpdate) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.Source != nil {
		project.Source = *update.Source
	}
	if update.Type != nil {
		project.Type = *update.Type
	}
	if update.Budget != nil {
		if update.Budget.IsNegative() {
			return nil, apperrors.ErrInvalidAmount
		}
		project.Budget = *update.Budget
	}
	if update.StartDate != nil {
		project.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		project.EndDate = update.EndDate
	}
	if update.AssignedMembers != nil {
		project.AssignedMembers = *update.AssignedMembers
	}
	if update.Status != nil {
		project.Status = *update.Status
	}
	if update.Progress != nil {
		if *update.Progress < 0 || *update.Progress > 100 {
			return nil, apperrors.ErrInvalidProgress
		}
		project.Progress = *update.Progress
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *projectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProjectNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *projectService) Stats(ctx context.Context) (*ProjectStats, error) {
	total, err := s.repo.Count(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	active, err := s.repo.Count(ctx, repository.ProjectFilter{Status: model.ProjectStatusOngoing})
	if err != nil {
		return nil, err
	}
	statusBreakdown, err := s.repo.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	typeBreakdown, err := s.repo.TypeBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	sourceBreakdown, err := s.repo.SourceBreakdown(ctx, 10)
	if err != nil {
		return nil, err
	}
	return &ProjectStats{
		TotalProjects:   total,
		ActiveProjects:  active,
		StatusBreakdown: statusBreakdown,
		TypeBreakdown:   typeBreakdown,
		SourceBreakdown: sourceBreakdown,
	}, nil
}
