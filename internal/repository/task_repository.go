package repository

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task and links its tags
func (r *GormTaskRepository) Create(task *models.Task, tagIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		return replaceTaskTags(tx, task.ID, tagIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindDetail finds a task with every relation rendered by the task detail view
func (r *GormTaskRepository) FindDetail(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("Assignee").
		Preload("Project").
		Preload("Section").
		Preload("TaskTags.Tag").
		Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(database.NewestFirst("comments"))
		}).
		Preload("Comments.User").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(database.NewestFirst("attachments"))
		}).
		Preload("Attachments.User").
		First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the tasks of a project with assignee and tags preloaded
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.project_id = ?", filter.ProjectID)
	if filter.SectionID != nil {
		query = query.Where("tasks.section_id = ?", *filter.SectionID)
	}

	if err := query.
		Preload("Assignee").
		Preload("TaskTags.Tag").
		Order("tasks.updated_at DESC").
		Order("tasks.id").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// CountRelations counts comments, attachments and sub-tasks for each task
func (r *GormTaskRepository) CountRelations(taskIDs []string) (map[string]TaskCounts, error) {
	comments, err := countBy(r.db, &models.Comment{}, "task_id", taskIDs)
	if err != nil {
		return nil, err
	}
	attachments, err := countBy(r.db, &models.Attachment{}, "task_id", taskIDs)
	if err != nil {
		return nil, err
	}
	subTasks, err := countBy(r.db, &models.Task{}, "parent_task_id", taskIDs)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]TaskCounts, len(taskIDs))
	for _, id := range taskIDs {
		counts[id] = TaskCounts{
			Comments:    comments[id],
			Attachments: attachments[id],
			SubTasks:    subTasks[id],
		}
	}
	return counts, nil
}

// Update updates a task and, when tagIDs is non-nil, replaces its tag set
func (r *GormTaskRepository) Update(task *models.Task, tagIDs *[]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if tagIDs == nil {
			return nil
		}
		return replaceTaskTags(tx, task.ID, *tagIDs)
	})
}

// MoveToSection changes the section of a task
func (r *GormTaskRepository) MoveToSection(id, sectionID string) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("section_id", sectionID).Error
}

// Delete deletes a task, its sub-tasks, and everything attached to them
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return purgeTasks(tx, func(db *gorm.DB) *gorm.DB {
			return db.Where("id = ?", id)
		})
	})
}

// ListByTag lists tasks carrying tagID inside workspaces userID belongs to
func (r *GormTaskRepository) ListByTag(tagID, userID string) ([]models.Task, error) {
	var tasks []models.Task

	err := r.db.Model(&models.Task{}).
		Select("tasks.*").
		Joins("JOIN task_tags ON task_tags.task_id = tasks.id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Joins("JOIN workspace_members ON workspace_members.workspace_id = projects.workspace_id").
		Where("task_tags.tag_id = ? AND workspace_members.user_id = ?", tagID, userID).
		Preload("Project.Workspace").
		Preload("Section").
		Preload("Assignee").
		Preload("TaskTags.Tag").
		Order("tasks.updated_at DESC").
		Find(&tasks).Error

	return tasks, err
}

// ListDueBetween lists unfinished tasks with an assignee whose due date is in [from, to)
func (r *GormTaskRepository) ListDueBetween(from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task

	err := r.db.
		Where("due_date >= ? AND due_date < ?", from, to).
		Where("assignee_id IS NOT NULL").
		Where("status <> ?", models.TaskStatusDone).
		Preload("Project").
		Order("due_date ASC").
		Find(&tasks).Error

	return tasks, err
}
