package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"gorm.io/gorm"
)

// AttachmentService handles file references attached to tasks.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	userRepo       repository.UserRepository
	guard          *AccessGuard
	emitter        *Emitter
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, userRepo repository.UserRepository, guard *AccessGuard, emitter *Emitter) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		guard:          guard,
		emitter:        emitter,
	}
}

// CreateAttachmentInput describes an uploaded file.
type CreateAttachmentInput struct {
	FileName string `validate:"required,max=255"`
	FileURL  string `validate:"required,url,max=2048"`
	FileSize int64  `validate:"gte=0"`
	FileType string `validate:"max=255"`
}

// ListAttachments returns the attachments of a task, newest first.
func (s *AttachmentService) ListAttachments(taskID, userID string) ([]models.Attachment, error) {
	if _, _, err := s.guard.Task(taskID, userID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// CreateAttachment records a file on a task and notifies the assignee when it is someone else.
func (s *AttachmentService) CreateAttachment(taskID, userID string, input CreateAttachmentInput) (*models.Attachment, []string, error) {
	input.FileName = strings.TrimSpace(input.FileName)
	input.FileURL = strings.TrimSpace(input.FileURL)
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	task, _, err := s.guard.Task(taskID, userID)
	if err != nil {
		return nil, nil, err
	}

	attachment := &models.Attachment{
		TaskID:   task.ID,
		UserID:   userID,
		FileName: input.FileName,
		FileURL:  input.FileURL,
		FileSize: input.FileSize,
		FileType: input.FileType,
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, nil, fmt.Errorf("failed to create attachment: %w", err)
	}

	var warnings []string
	uploader, err := s.userRepo.FindByID(userID)
	if err != nil {
		log.Printf("Failed to load uploader %s: %v", userID, err)
	} else {
		attachment.User = *uploader
	}

	if task.AssigneeID != nil && *task.AssigneeID != userID {
		if uploader == nil {
			warnings = []string{WarningNotificationFailed}
		} else {
			warnings = s.emitter.EmitBestEffort(FileAttachedEvent(*task.AssigneeID, task.Name, uploader.Name, attachment.FileName))
		}
	}

	return attachment, warnings, nil
}

// DeleteAttachment deletes an attachment. Uploader only.
func (s *AttachmentService) DeleteAttachment(attachmentID, userID string) error {
	attachment, err := s.attachmentRepo.FindByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}
	if attachment.UserID != userID {
		return ErrNotAttachmentUploader
	}

	if err := s.attachmentRepo.Delete(attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}
