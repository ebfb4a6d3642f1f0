package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"backoffice/internal/model"
	"backoffice/internal/repository"
	"backoffice/internal/service"
)

const dateLayout = "2006-01-02"

// ProjectHandler bundles project endpoints.
type ProjectHandler struct {
	svc service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProjectRequest represents a project creation request. Dates use the
// YYYY-MM-DD layout.
type CreateProjectRequest struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	Source          string          `json:"source" validate:"required"`
	Type            string          `json:"type" validate:"required,oneof=Client Internal Government"`
	Budget          decimal.Decimal `json:"budget"`
	StartDate       string          `json:"start_date" validate:"required"`
	EndDate         string          `json:"end_date"`
	AssignedMembers []string        `json:"assigned_members"`
	Status          string          `json:"status" validate:"omitempty,oneof=Pending Ongoing Completed 'On Hold'"`
	Progress        int             `json:"progress" validate:"min=0,max=100"`
}

// UpdateProjectRequest represents a partial project update. Absent fields
// are left unchanged.
type UpdateProjectRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Source          *string          `json:"source"`
	Type            *string          `json:"type" validate:"omitempty,oneof=Client Internal Government"`
	Budget          *decimal.Decimal `json:"budget"`
	StartDate       *string          `json:"start_date"`
	EndDate         *string          `json:"end_date"`
	AssignedMembers *[]string        `json:"assigned_members"`
	Status          *string          `json:"status" validate:"omitempty,oneof=Pending Ongoing Completed 'On Hold'"`
	Progress        *int             `json:"progress" validate:"omitempty,min=0,max=100"`
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func parseMemberIDs(raw []string) ([]uuid.UUID, error) {
	members := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, nil
}

// CreateProject godoc
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		}
		endDate = &parsed
	}
	members, err := parseMemberIDs(req.AssignedMembers)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assigned member id")
	}

	status := model.ProjectStatus(req.Status)
	if status == "" {
		status = model.ProjectStatusPending
	}

	project := &model.Project{
		Name:            req.Name,
		Description:     req.Description,
		Source:          req.Source,
		Type:            model.ProjectType(req.Type),
		Budget:          req.Budget,
		StartDate:       startDate,
		EndDate:         endDate,
		AssignedMembers: members,
		Status:          status,
		Progress:        req.Progress,
	}

	created, err := h.svc.CreateProject(c.Request().Context(), actor, project)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param source query string false "Filter by source substring"
// @Param type query string false "Filter by project type"
// @Param status query string false "Filter by status"
// @Success 200 {array} model.Project
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	filter := repository.ProjectFilter{
		SourceContains: c.QueryParam("source"),
		Type:           model.ProjectType(c.QueryParam("type")),
		Status:         model.ProjectStatus(c.QueryParam("status")),
	}
	projects, err := h.svc.ListProjects(c.Request().Context(), actor, filter)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get project by id
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	project, err := h.svc.GetProject(c.Request().Context(), actor, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body UpdateProjectRequest true "Fields to update"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Source:      req.Source,
		Budget:      req.Budget,
		Progress:    req.Progress,
	}
	if req.Type != nil {
		t := model.ProjectType(*req.Type)
		update.Type = &t
	}
	if req.Status != nil {
		s := model.ProjectStatus(*req.Status)
		update.Status = &s
	}
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		}
		update.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		}
		update.EndDate = &parsed
	}
	if req.AssignedMembers != nil {
		members, err := parseMemberIDs(*req.AssignedMembers)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid assigned member id")
		}
		update.AssignedMembers = &members
	}

	project, err := h.svc.UpdateProject(c.Request().Context(), id, update)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteProject(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "project deleted successfully",
	})
}

// ProjectStats godoc
// @Summary Project statistics
// @Tags projects
// @Produce json
// @Success 200 {object} service.ProjectStats
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects/stats [get]
func (h *ProjectHandler) ProjectStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
