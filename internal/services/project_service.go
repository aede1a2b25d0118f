package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/workspace-task-api/internal/constants"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/views"
	"gorm.io/gorm"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	guard       *AccessGuard
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, guard *AccessGuard) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		guard:       guard,
	}
}

// ProjectSummary is a project with its task count.
type ProjectSummary struct {
	Project   models.Project
	TaskCount int64
}

// CreateProjectInput represents parameters to create a project.
type CreateProjectInput struct {
	WorkspaceID string `validate:"required"`
	Name        string `validate:"required,max=255"`
	Description string
	DueDate     *time.Time
}

// UpdateProjectInput represents parameters to update a project.
// Nil optional fields leave the stored value unchanged.
type UpdateProjectInput struct {
	Name         string `validate:"required,max=255"`
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Status       models.ProjectStatus `validate:"required,oneof=未着手 進行中 完了 保留"`
}

// ListProjects returns the projects of a workspace, most recently updated first.
func (s *ProjectService) ListProjects(workspaceID, userID string) ([]ProjectSummary, error) {
	if _, err := s.guard.Workspace(workspaceID, userID); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	counts, err := s.projectRepo.CountTasks(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	summaries := make([]ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = ProjectSummary{Project: p, TaskCount: counts[p.ID]}
	}
	return summaries, nil
}

// GetProject returns a project with its ordered sections and their tasks.
func (s *ProjectService) GetProject(projectID, workspaceID, userID string) (*models.Project, error) {
	if _, err := s.guard.ProjectInWorkspace(projectID, workspaceID, userID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindDetail(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}

// CreateProject creates a project together with its default sections.
func (s *ProjectService) CreateProject(userID string, input CreateProjectInput) (*models.Project, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.guard.Workspace(input.WorkspaceID, userID); err != nil {
		return nil, err
	}

	project := &models.Project{
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      models.ProjectStatusNotStarted,
	}

	if err := s.projectRepo.CreateWithSections(project, constants.DefaultSectionNames); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProject updates a project of the given workspace.
func (s *ProjectService) UpdateProject(projectID, workspaceID, userID string, input UpdateProjectInput) (*models.Project, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project, err := s.guard.ProjectInWorkspace(projectID, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Status = input.Status
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.ClearDueDate {
		project.DueDate = nil
	} else if input.DueDate != nil {
		project.DueDate = input.DueDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject deletes a project with its sections and tasks.
func (s *ProjectService) DeleteProject(projectID, workspaceID, userID string) error {
	if _, err := s.guard.ProjectInWorkspace(projectID, workspaceID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// GetProjectView renders the tasks of a project in the requested view type.
func (s *ProjectService) GetProjectView(projectID, userID, viewType string) (views.View, error) {
	t, err := views.ParseType(viewType)
	if err != nil {
		if errors.Is(err, views.ErrUnknownType) {
			return nil, ErrUnknownViewType
		}
		return nil, err
	}

	if _, err := s.guard.Project(projectID, userID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindDetail(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	return views.Build(t, project.Sections)
}
