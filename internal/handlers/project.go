package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

// ProjectHandler serves project and section endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
	sectionService *services.SectionService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, sectionService *services.SectionService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		sectionService: sectionService,
	}
}

// ListProjects returns the projects of a workspace.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summaries, err := h.projectService.ListProjects(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	items := make([]dto.ProjectListItemDTO, len(summaries))
	for i, s := range summaries {
		items[i] = dto.ProjectListItemDTO{
			ProjectDTO: dto.ToProjectDTO(s.Project),
			TaskCount:  s.TaskCount,
		}
	}
	c.JSON(http.StatusOK, items)
}

// GetProject returns a project with its sections and their tasks.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Param("project_id"), c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*project))
}

// CreateProject creates a project with the default sections.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(userID, services.CreateProjectInput{
		WorkspaceID: c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject updates a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name         string               `json:"name"`
		Description  *string              `json:"description"`
		DueDate      *time.Time           `json:"due_date"`
		ClearDueDate bool                 `json:"clear_due_date"`
		Status       models.ProjectStatus `json:"status"`
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(c.Param("project_id"), c.Param("id"), userID, services.UpdateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Status:       req.Status,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project with its sections and tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Param("project_id"), c.Param("id"), userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// GetProjectView renders a project's tasks as a list, board, timeline, gantt or calendar.
func (h *ProjectHandler) GetProjectView(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	view, err := h.projectService.GetProjectView(c.Param("id"), userID, c.Param("type"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListSections returns the sections of a project in order.
func (h *ProjectHandler) ListSections(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sections, err := h.sectionService.ListSections(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSectionDTOs(sections))
}

type sectionNameRequest struct {
	Name string `json:"name"`
}

// CreateSection appends a section to a project.
func (h *ProjectHandler) CreateSection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req sectionNameRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.sectionService.CreateSection(c.Param("id"), userID, req.Name)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSectionDTO(*section))
}

// UpdateSection renames a section.
func (h *ProjectHandler) UpdateSection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req sectionNameRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.sectionService.UpdateSection(c.Param("id"), userID, req.Name)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSectionDTO(*section))
}

// DeleteSection deletes a section and its tasks.
func (h *ProjectHandler) DeleteSection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.sectionService.DeleteSection(c.Param("id"), userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}

// ReorderSection moves a section to a new position.
func (h *ProjectHandler) ReorderSection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type ReorderSectionRequest struct {
		Order *int `json:"order" binding:"required"`
	}

	var req ReorderSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.sectionService.ReorderSection(c.Param("id"), userID, *req.Order)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSectionDTO(*section))
}
