package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

// CommentHandler serves comment and attachment endpoints.
type CommentHandler struct {
	commentService    *services.CommentService
	attachmentService *services.AttachmentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, attachmentService *services.AttachmentService) *CommentHandler {
	return &CommentHandler{
		commentService:    commentService,
		attachmentService: attachmentService,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// ListComments returns the comments of a task, oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	response := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		response[i] = dto.ToCommentDTO(comment)
	}
	c.JSON(http.StatusOK, response)
}

// CreateComment adds a comment to a task.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, warnings, err := h.commentService.CreateComment(c.Param("id"), userID, req.Content)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment":  dto.ToCommentDTO(*comment),
		"warnings": dto.Warnings(warnings),
	})
}

// UpdateComment edits the caller's comment.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Param("id"), userID, req.Content)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment deletes the caller's comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Param("id"), userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// ListAttachments returns the attachments of a task, newest first.
func (h *CommentHandler) ListAttachments(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListAttachments(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	response := make([]dto.AttachmentDTO, len(attachments))
	for i, attachment := range attachments {
		response[i] = dto.ToAttachmentDTO(attachment)
	}
	c.JSON(http.StatusOK, response)
}

// CreateAttachment records an uploaded file against a task.
func (h *CommentHandler) CreateAttachment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type CreateAttachmentRequest struct {
		FileName string `json:"file_name"`
		FileURL  string `json:"file_url"`
		FileSize int64  `json:"file_size"`
		FileType string `json:"file_type"`
	}

	var req CreateAttachmentRequest
	if !bindJSON(c, &req) {
		return
	}

	attachment, warnings, err := h.attachmentService.CreateAttachment(c.Param("id"), userID, services.CreateAttachmentInput{
		FileName: req.FileName,
		FileURL:  req.FileURL,
		FileSize: req.FileSize,
		FileType: req.FileType,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"attachment": dto.ToAttachmentDTO(*attachment),
		"warnings":   dto.Warnings(warnings),
	})
}

// DeleteAttachment deletes an attachment uploaded by the caller.
func (h *CommentHandler) DeleteAttachment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Param("id"), userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
