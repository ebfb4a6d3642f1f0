package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) Find(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter repository.ProjectFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) StatusBreakdown(ctx context.Context) ([]repository.BudgetBreakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BudgetBreakdown), args.Error(1)
}

func (m *MockProjectRepository) TypeBreakdown(ctx context.Context) ([]repository.BudgetBreakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BudgetBreakdown), args.Error(1)
}

func (m *MockProjectRepository) SourceBreakdown(ctx context.Context, limit int) ([]repository.BudgetBreakdown, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BudgetBreakdown), args.Error(1)
}

func TestProjectService_ListProjects_EmployeeScoping(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	employeeID := uuid.New()
	otherID := uuid.New()

	assigned := model.Project{Name: "Assigned", AssignedMembers: []uuid.UUID{employeeID, otherID}}
	unassigned := model.Project{Name: "Unassigned", AssignedMembers: []uuid.UUID{otherID}}
	mockRepo.On("Find", mock.Anything, mock.Anything).Return([]model.Project{assigned, unassigned}, nil)

	svc := NewProjectService(mockRepo)

	employee := Actor{ID: employeeID, Role: model.RoleEmployee}
	projects, err := svc.ListProjects(context.Background(), employee, repository.ProjectFilter{})
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, "Assigned", projects[0].Name)

	manager := Actor{ID: uuid.New(), Role: model.RoleManager}
	projects, err = svc.ListProjects(context.Background(), manager, repository.ProjectFilter{})
	assert.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectService_GetProject_EmployeeForbidden(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	employeeID := uuid.New()
	projectID := uuid.New()

	mockRepo.On("FindByID", mock.Anything, projectID).Return(&model.Project{
		ID:              projectID,
		AssignedMembers: []uuid.UUID{uuid.New()},
	}, nil)

	svc := NewProjectService(mockRepo)
	employee := Actor{ID: employeeID, Role: model.RoleEmployee}

	project, err := svc.GetProject(context.Background(), employee, projectID)
	assert.Nil(t, project)
	assert.Equal(t, apperrors.ErrForbidden, err)
}

func TestProjectService_GetProject_NotFound(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	projectID := uuid.New()
	mockRepo.On("FindByID", mock.Anything, projectID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewProjectService(mockRepo)
	admin := Actor{ID: uuid.New(), Role: model.RoleAdmin}

	project, err := svc.GetProject(context.Background(), admin, projectID)
	assert.Nil(t, project)
	assert.Equal(t, apperrors.ErrProjectNotFound, err)
}

func TestProjectService_CreateProject_Validation(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	svc := NewProjectService(mockRepo)
	actor := Actor{ID: uuid.New(), Role: model.RoleManager}

	_, err := svc.CreateProject(context.Background(), actor, &model.Project{Progress: 150})
	assert.Equal(t, apperrors.ErrInvalidProgress, err)

	_, err = svc.CreateProject(context.Background(), actor, &model.Project{Budget: decimal.NewFromInt(-1)})
	assert.Equal(t, apperrors.ErrInvalidAmount, err)

	mockRepo.AssertNotCalled(t, "Create")
}

func TestProjectService_CreateProject_SetsCreator(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	actor := Actor{ID: uuid.New(), Role: model.RoleAdmin}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
		return p.CreatedBy == actor.ID
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Project).ID = uuid.New()
	})
	mockRepo.On("FindByID", mock.Anything, mock.Anything).Return(&model.Project{Name: "Created"}, nil)

	svc := NewProjectService(mockRepo)
	created, err := svc.CreateProject(context.Background(), actor, &model.Project{
		Name:   "Created",
		Budget: decimal.NewFromInt(1000),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Created", created.Name)
	mockRepo.AssertExpectations(t)
}

func TestProjectService_UpdateProject_ProgressBounds(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	projectID := uuid.New()
	mockRepo.On("FindByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)

	svc := NewProjectService(mockRepo)

	bad := 101
	_, err := svc.UpdateProject(context.Background(), projectID, ProjectUpdate{Progress: &bad})
	assert.Equal(t, apperrors.ErrInvalidProgress, err)
	mockRepo.AssertNotCalled(t, "Update")
}
