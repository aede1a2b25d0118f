package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"gorm.io/gorm"
)

// AccessGuard decides whether a user may operate on a workspace-scoped entity.
// Every lookup resolves the target first, so a missing entity reports NotFound
// before membership is evaluated.
type AccessGuard struct {
	workspaceRepo repository.WorkspaceRepository
	projectRepo   repository.ProjectRepository
	sectionRepo   repository.SectionRepository
	taskRepo      repository.TaskRepository
}

// NewAccessGuard creates a new AccessGuard
func NewAccessGuard(
	workspaceRepo repository.WorkspaceRepository,
	projectRepo repository.ProjectRepository,
	sectionRepo repository.SectionRepository,
	taskRepo repository.TaskRepository,
) *AccessGuard {
	return &AccessGuard{
		workspaceRepo: workspaceRepo,
		projectRepo:   projectRepo,
		sectionRepo:   sectionRepo,
		taskRepo:      taskRepo,
	}
}

// IsWorkspaceMember reports whether a membership row exists for the pair.
func (g *AccessGuard) IsWorkspaceMember(workspaceID, userID string) (bool, error) {
	ok, err := g.workspaceRepo.IsMember(workspaceID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check workspace membership: %w", err)
	}
	return ok, nil
}

// IsWorkspaceOwner reports whether userID owns the workspace.
func (g *AccessGuard) IsWorkspaceOwner(workspaceID, userID string) (bool, error) {
	workspace, err := g.loadWorkspace(workspaceID)
	if err != nil {
		return false, err
	}
	return workspace.OwnerID == userID, nil
}

// Workspace loads a workspace the user is a member of.
func (g *AccessGuard) Workspace(workspaceID, userID string) (*models.Workspace, error) {
	workspace, err := g.loadWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if err := g.requireMember(workspace.ID, userID); err != nil {
		return nil, err
	}
	return workspace, nil
}

// OwnedWorkspace loads a workspace owned by the user.
func (g *AccessGuard) OwnedWorkspace(workspaceID, userID string) (*models.Workspace, error) {
	workspace, err := g.loadWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.OwnerID != userID {
		return nil, ErrNotWorkspaceOwner
	}
	return workspace, nil
}

// Project loads a project whose workspace the user belongs to.
func (g *AccessGuard) Project(projectID, userID string) (*models.Project, error) {
	project, err := g.loadProject(projectID)
	if err != nil {
		return nil, err
	}
	if err := g.requireMember(project.WorkspaceID, userID); err != nil {
		return nil, err
	}
	return project, nil
}

// ProjectInWorkspace is Project restricted to one workspace. A project living
// in another workspace is reported as not found.
func (g *AccessGuard) ProjectInWorkspace(projectID, workspaceID, userID string) (*models.Project, error) {
	project, err := g.loadProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.WorkspaceID != workspaceID {
		return nil, ErrProjectNotFound
	}
	if err := g.requireMember(workspaceID, userID); err != nil {
		return nil, err
	}
	return project, nil
}

// Section loads a section and its project, resolving Section → Project → Workspace.
func (g *AccessGuard) Section(sectionID, userID string) (*models.Section, *models.Project, error) {
	section, err := g.sectionRepo.FindByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSectionNotFound
		}
		return nil, nil, fmt.Errorf("failed to load section: %w", err)
	}

	project, err := g.Project(section.ProjectID, userID)
	if err != nil {
		return nil, nil, err
	}
	return section, project, nil
}

// Task loads a task and its project, resolving Task → Project → Workspace.
func (g *AccessGuard) Task(taskID, userID string) (*models.Task, *models.Project, error) {
	task, err := g.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to load task: %w", err)
	}

	project, err := g.Project(task.ProjectID, userID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

// requireMember fails with ErrNotWorkspaceMember unless the user belongs to the workspace.
func (g *AccessGuard) requireMember(workspaceID, userID string) error {
	ok, err := g.IsWorkspaceMember(workspaceID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotWorkspaceMember
	}
	return nil
}

func (g *AccessGuard) loadWorkspace(workspaceID string) (*models.Workspace, error) {
	workspace, err := g.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	return workspace, nil
}

func (g *AccessGuard) loadProject(projectID string) (*models.Project, error) {
	project, err := g.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}
