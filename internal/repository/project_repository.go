package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice/internal/model"
)

// ProjectFilter narrows project queries. Zero values mean "no restriction".
type ProjectFilter struct {
	SourceContains string // case-insensitive substring match
	Type           model.ProjectType
	Status         model.ProjectStatus
	SortRecent     bool // order by creation time descending
	Limit          int
}

// BudgetBreakdown is a grouped count/budget aggregate row.
type BudgetBreakdown struct {
	Label       string          `json:"label"`
	Count       int64           `json:"count"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
}

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Find(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	Count(ctx context.Context, filter ProjectFilter) (int64, error)
	StatusBreakdown(ctx context.Context) ([]BudgetBreakdown, error)
	TypeBreakdown(ctx context.Context) ([]BudgetBreakdown, error)
	SourceBreakdown(ctx context.Context, limit int) ([]BudgetBreakdown, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Preload("Creator", creatorFields).
		Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Find(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Project{}), filter).
		Preload("Creator", creatorFields)
	if filter.SortRecent {
		q = q.Order("created_at DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var projects []model.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Count(ctx context.Context, filter ProjectFilter) (int64, error) {
	var count int64
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Project{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *projectRepository) StatusBreakdown(ctx context.Context) ([]BudgetBreakdown, error) {
	return r.breakdown(ctx, "status", 0)
}

func (r *projectRepository) TypeBreakdown(ctx context.Context) ([]BudgetBreakdown, error) {
	return r.breakdown(ctx, "type", 0)
}

func (r *projectRepository) SourceBreakdown(ctx context.Context, limit int) ([]BudgetBreakdown, error) {
	return r.breakdown(ctx, "source", limit)
}

func (r *projectRepository) breakdown(ctx context.Context, column string, limit int) ([]BudgetBreakdown, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).
		Select(column + " AS label, COUNT(*) AS count, COALESCE(SUM(budget), 0) AS total_budget").
		Group(column)
	if limit > 0 {
		q = q.Order("count DESC").Limit(limit)
	}
	var rows []BudgetBreakdown
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *projectRepository) applyFilter(q *gorm.DB, filter ProjectFilter) *gorm.DB {
	if filter.SourceContains != "" {
		q = q.Where("LOWER(source) LIKE ?", "%"+strings.ToLower(filter.SourceContains)+"%")
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}
