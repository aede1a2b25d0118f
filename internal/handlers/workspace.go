package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

// WorkspaceHandler serves workspace and membership endpoints.
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// ListWorkspaces returns the caller's workspaces with project counts.
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summaries, err := h.workspaceService.ListWorkspaces(userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	items := make([]dto.WorkspaceListItemDTO, len(summaries))
	for i, s := range summaries {
		items[i] = dto.ToWorkspaceListItemDTO(s.Workspace, s.ProjectCount)
	}
	c.JSON(http.StatusOK, items)
}

// GetWorkspace returns a workspace with its owner and members.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetWorkspace(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDetailDTO(*workspace))
}

// CreateWorkspace creates a workspace owned by the caller.
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type CreateWorkspaceRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var req CreateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceDTO(*workspace, true))
}

// UpdateWorkspace updates the name or description of a workspace.
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type UpdateWorkspaceRequest struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Param("id"), userID, services.UpdateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*workspace, true))
}

// DeleteWorkspace deletes a workspace and everything inside it.
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Param("id"), userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workspace deleted successfully"})
}

// InviteMember adds an existing user to a workspace.
func (h *WorkspaceHandler) InviteMember(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type InviteMemberRequest struct {
		UserID string `json:"user_id" binding:"required"`
	}

	var req InviteMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.workspaceService.InviteMember(c.Param("id"), userID, req.UserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceMemberDTO(*member))
}

// RemoveMember removes a member from a workspace.
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(c.Param("id"), userID, c.Param("user_id")); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// JoinWorkspace joins a workspace with an invite code.
func (h *WorkspaceHandler) JoinWorkspace(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type JoinWorkspaceRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	workspace, err := h.workspaceService.JoinWithInviteCode(req.InviteCode, userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*workspace, false))
}

// RegenerateInviteCode issues a new invite code for a workspace.
func (h *WorkspaceHandler) RegenerateInviteCode(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.RegenerateInviteCode(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*workspace, true))
}
