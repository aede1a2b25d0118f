package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSectionRepository is a GORM implementation of SectionRepository
type GormSectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &GormSectionRepository{db: db}
}

// lockProjectSections takes row locks on every section of a project.
// SQLite ignores the locking clause and serializes writers instead.
func lockProjectSections(tx *gorm.DB, projectID string) ([]models.Section, error) {
	var sections []models.Section
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&sections).Error
	return sections, err
}

// CreateAtEnd creates a section whose order is one past the current maximum
func (r *GormSectionRepository) CreateAtEnd(section *models.Section) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		existing, err := lockProjectSections(tx, section.ProjectID)
		if err != nil {
			return err
		}

		section.Order = 0
		if n := len(existing); n > 0 {
			section.Order = existing[n-1].Order + 1
		}

		return tx.Omit(clause.Associations).Create(section).Error
	})
}

// FindByID finds a section by ID
func (r *GormSectionRepository) FindByID(id string) (*models.Section, error) {
	var section models.Section
	if err := r.db.First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// ListByProject lists the sections of a project in order with their tasks
func (r *GormSectionRepository) ListByProject(projectID string) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.
		Where("project_id = ?", projectID).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("updated_at DESC")
		}).
		Preload("Tasks.Assignee").
		Order("position ASC").
		Find(&sections).Error
	return sections, err
}

// Update updates a section
func (r *GormSectionRepository) Update(section *models.Section) error {
	return r.db.Omit(clause.Associations).Save(section).Error
}

// Delete deletes a section and its tasks
func (r *GormSectionRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := purgeTasks(tx, func(db *gorm.DB) *gorm.DB {
			return db.Where("section_id = ?", id)
		}); err != nil {
			return err
		}
		return tx.Delete(&models.Section{}, "id = ?", id).Error
	})
}

// Reorder places a section at order. Every other section of the project at
// or after order moves back by one, all under the project's section locks.
func (r *GormSectionRepository) Reorder(id string, order int) (*models.Section, error) {
	var section models.Section

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&section, "id = ?", id).Error; err != nil {
			return err
		}
		if _, err := lockProjectSections(tx, section.ProjectID); err != nil {
			return err
		}

		if err := tx.Model(&models.Section{}).
			Where("project_id = ? AND position >= ? AND id <> ?", section.ProjectID, order, id).
			Update("position", gorm.Expr("position + ?", 1)).Error; err != nil {
			return err
		}

		section.Order = order
		return tx.Model(&section).Update("position", order).Error
	})
	if err != nil {
		return nil, err
	}

	return &section, nil
}
