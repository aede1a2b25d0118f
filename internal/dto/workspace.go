package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
)

// WorkspaceDTO represents a workspace in API responses
type WorkspaceDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	InviteCode  string    `json:"invite_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkspaceMemberDTO represents a member in a workspace
type WorkspaceMemberDTO struct {
	User     UserDTO              `json:"user"`
	Role     models.WorkspaceRole `json:"role"`
	JoinedAt time.Time            `json:"joined_at"`
}

// WorkspaceDetailDTO represents a workspace with its owner and members
type WorkspaceDetailDTO struct {
	WorkspaceDTO
	Owner   *UserDTO             `json:"owner,omitempty"`
	Members []WorkspaceMemberDTO `json:"members"`
}

// WorkspaceListItemDTO represents a workspace in list responses
type WorkspaceListItemDTO struct {
	WorkspaceDetailDTO
	ProjectCount int64 `json:"project_count"`
}

// ToWorkspaceDTO converts a Workspace model to WorkspaceDTO
func ToWorkspaceDTO(workspace models.Workspace, includeInviteCode bool) WorkspaceDTO {
	dto := WorkspaceDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		OwnerID:     workspace.OwnerID,
		CreatedAt:   workspace.CreatedAt,
		UpdatedAt:   workspace.UpdatedAt,
	}
	if includeInviteCode {
		dto.InviteCode = workspace.InviteCode
	}
	return dto
}

// ToWorkspaceMemberDTO converts a member to DTO
func ToWorkspaceMemberDTO(member models.WorkspaceMember) WorkspaceMemberDTO {
	return WorkspaceMemberDTO{
		User:     ToUserSummaryDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToWorkspaceDetailDTO converts a workspace with preloaded owner and members
func ToWorkspaceDetailDTO(workspace models.Workspace) WorkspaceDetailDTO {
	members := make([]WorkspaceMemberDTO, len(workspace.Members))
	for i, member := range workspace.Members {
		members[i] = ToWorkspaceMemberDTO(member)
	}

	return WorkspaceDetailDTO{
		WorkspaceDTO: ToWorkspaceDTO(workspace, true),
		Owner:        userRef(&workspace.Owner),
		Members:      members,
	}
}

// ToWorkspaceListItemDTO converts a workspace and its project count
func ToWorkspaceListItemDTO(workspace models.Workspace, projectCount int64) WorkspaceListItemDTO {
	return WorkspaceListItemDTO{
		WorkspaceDetailDTO: ToWorkspaceDetailDTO(workspace),
		ProjectCount:       projectCount,
	}
}
