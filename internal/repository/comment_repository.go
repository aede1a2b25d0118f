package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *GormCommentRepository) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask lists the comments of a task with their authors, oldest first
func (r *GormCommentRepository) ListByTask(taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("task_id = ?", taskID).
		Preload("User").
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Save(comment).Error
}

func (r *GormCommentRepository) Delete(id string) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
