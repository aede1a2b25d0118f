package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithSections creates a project and one section per name, ordered from zero
func (r *GormProjectRepository) CreateWithSections(project *models.Project, sectionNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		if len(sectionNames) == 0 {
			return nil
		}

		sections := make([]models.Section, len(sectionNames))
		for i, name := range sectionNames {
			sections[i] = models.Section{
				ProjectID: project.ID,
				Name:      name,
				Order:     i,
			}
		}
		if err := tx.Omit(clause.Associations).Create(&sections).Error; err != nil {
			return err
		}

		project.Sections = sections
		return nil
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindDetail finds a project with its sections in order and their tasks
func (r *GormProjectRepository) FindDetail(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Sections.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("updated_at DESC")
		}).
		Preload("Sections.Tasks.Assignee").
		Preload("Sections.Tasks.TaskTags.Tag").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByWorkspace lists the projects of a workspace, most recently updated first
func (r *GormProjectRepository) ListByWorkspace(workspaceID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("workspace_id = ?", workspaceID).
		Order("updated_at DESC").
		Find(&projects).Error
	return projects, err
}

// CountTasks returns the number of tasks per project
func (r *GormProjectRepository) CountTasks(projectIDs []string) (map[string]int64, error) {
	return countBy(r.db, &models.Task{}, "project_id", projectIDs)
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete deletes a project with its sections and tasks
func (r *GormProjectRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := purgeTasks(tx, func(db *gorm.DB) *gorm.DB {
			return db.Where("project_id = ?", id)
		}); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
