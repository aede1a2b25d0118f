package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

// AttachmentDTO represents an attachment in API responses
type AttachmentDTO struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	FileName  string    `json:"file_name"`
	FileURL   string    `json:"file_url"`
	FileSize  int64     `json:"file_size"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		User:      userRef(&comment.User),
	}
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:        attachment.ID,
		TaskID:    attachment.TaskID,
		UserID:    attachment.UserID,
		FileName:  attachment.FileName,
		FileURL:   attachment.FileURL,
		FileSize:  attachment.FileSize,
		FileType:  attachment.FileType,
		CreatedAt: attachment.CreatedAt,
		User:      userRef(&attachment.User),
	}
}
