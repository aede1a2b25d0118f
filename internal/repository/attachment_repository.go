package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAttachmentRepository is a GORM implementation of AttachmentRepository
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

func (r *GormAttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Omit(clause.Associations).Create(attachment).Error
}

func (r *GormAttachmentRepository) FindByID(id string) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.Preload("User").First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByTask lists the attachments of a task with their uploaders, newest first
func (r *GormAttachmentRepository) ListByTask(taskID string) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.
		Where("task_id = ?", taskID).
		Preload("User").
		Scopes(database.NewestFirst("attachments")).
		Find(&attachments).Error
	return attachments, err
}

func (r *GormAttachmentRepository) Delete(id string) error {
	return r.db.Delete(&models.Attachment{}, "id = ?", id).Error
}
