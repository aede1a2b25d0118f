package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/utils"
	"gorm.io/gorm"
)

// WorkspaceService provides business logic for workspace operations.
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	userRepo      repository.UserRepository
	guard         *AccessGuard
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, userRepo repository.UserRepository, guard *AccessGuard) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		guard:         guard,
	}
}

// WorkspaceSummary is a workspace with its project count.
type WorkspaceSummary struct {
	Workspace    models.Workspace
	ProjectCount int64
}

// CreateWorkspaceInput represents parameters to create a new workspace.
type CreateWorkspaceInput struct {
	Name        string `validate:"required,max=100"`
	Description string
	OwnerID     string `validate:"required"`
}

// UpdateWorkspaceInput represents parameters to update a workspace.
type UpdateWorkspaceInput struct {
	Name        string `validate:"required,max=100"`
	Description *string
}

// ListWorkspaces returns the workspaces the user belongs to.
func (s *WorkspaceService) ListWorkspaces(userID string) ([]WorkspaceSummary, error) {
	workspaces, err := s.workspaceRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	ids := make([]string, len(workspaces))
	for i, ws := range workspaces {
		ids[i] = ws.ID
	}
	counts, err := s.workspaceRepo.CountProjects(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	summaries := make([]WorkspaceSummary, len(workspaces))
	for i, ws := range workspaces {
		summaries[i] = WorkspaceSummary{Workspace: ws, ProjectCount: counts[ws.ID]}
	}
	return summaries, nil
}

// GetWorkspace returns a workspace with its owner and members.
func (s *WorkspaceService) GetWorkspace(workspaceID, userID string) (*models.Workspace, error) {
	if _, err := s.guard.Workspace(workspaceID, userID); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.FindByIDWithMembers(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	return workspace, nil
}

// CreateWorkspace creates a workspace with the caller as owner member.
func (s *WorkspaceService) CreateWorkspace(input CreateWorkspaceInput) (*models.Workspace, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	workspace := &models.Workspace{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		InviteCode:  inviteCode,
	}
	owner := &models.WorkspaceMember{
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.workspaceRepo.CreateWithOwner(workspace, owner); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

// UpdateWorkspace renames a workspace. Owner only.
func (s *WorkspaceService) UpdateWorkspace(workspaceID, userID string, input UpdateWorkspaceInput) (*models.Workspace, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	workspace, err := s.guard.OwnedWorkspace(workspaceID, userID)
	if err != nil {
		return nil, err
	}

	workspace.Name = input.Name
	if input.Description != nil {
		workspace.Description = *input.Description
	}

	if err := s.workspaceRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return workspace, nil
}

// DeleteWorkspace deletes a workspace and everything it owns. Owner only.
func (s *WorkspaceService) DeleteWorkspace(workspaceID, userID string) error {
	if _, err := s.guard.OwnedWorkspace(workspaceID, userID); err != nil {
		return err
	}

	if err := s.workspaceRepo.Delete(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}

// InviteMember adds an existing user to a workspace. Owner only.
func (s *WorkspaceService) InviteMember(workspaceID, actorID, userID string) (*models.WorkspaceMember, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInput("user_id is required")
	}

	if _, err := s.guard.OwnedWorkspace(workspaceID, actorID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.addMember(workspaceID, user)
}

// JoinWithInviteCode adds the caller to the workspace identified by code.
func (s *WorkspaceService) JoinWithInviteCode(code, userID string) (*models.Workspace, error) {
	if strings.TrimSpace(code) == "" {
		return nil, invalidInput("invite_code is required")
	}
	code, ok := utils.NormalizeInviteCode(code)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}

	workspace, err := s.workspaceRepo.FindByInviteCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if _, err := s.addMember(workspace.ID, user); err != nil {
		return nil, err
	}
	return workspace, nil
}

// RegenerateInviteCode replaces the invite code of a workspace. Owner only.
func (s *WorkspaceService) RegenerateInviteCode(workspaceID, userID string) (*models.Workspace, error) {
	workspace, err := s.guard.OwnedWorkspace(workspaceID, userID)
	if err != nil {
		return nil, err
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	workspace.InviteCode = inviteCode
	if err := s.workspaceRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update invite code: %w", err)
	}
	return workspace, nil
}

// RemoveMember removes a member from a workspace. Owner only; the owner
// itself can never be removed.
func (s *WorkspaceService) RemoveMember(workspaceID, actorID, userID string) error {
	workspace, err := s.guard.OwnedWorkspace(workspaceID, actorID)
	if err != nil {
		return err
	}

	if userID == workspace.OwnerID {
		return ErrCannotRemoveOwner
	}

	if _, err := s.workspaceRepo.FindMember(workspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.workspaceRepo.RemoveMember(workspaceID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (s *WorkspaceService) addMember(workspaceID string, user *models.User) (*models.WorkspaceMember, error) {
	isMember, err := s.guard.IsWorkspaceMember(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	}
	if err := s.workspaceRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	member.User = *user
	return member, nil
}
