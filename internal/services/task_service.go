package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/workspace-task-api/internal/constants"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAINoTasksGenerated = invalidInput("AI did not generate any tasks")
	ErrAINoValidTasks     = invalidInput("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	sectionRepo repository.SectionRepository
	guard       *AccessGuard
	emitter     *Emitter
	aiService   *AIService
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	sectionRepo repository.SectionRepository,
	guard *AccessGuard,
	emitter *Emitter,
	aiService *AIService,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		sectionRepo: sectionRepo,
		guard:       guard,
		emitter:     emitter,
		aiService:   aiService,
	}
}

// TaskListItem is a task with the number of its comments, attachments and sub-tasks.
type TaskListItem struct {
	Task   models.Task
	Counts repository.TaskCounts
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID    string `validate:"required"`
	SectionID    string `validate:"required"`
	Name         string `validate:"required,max=255"`
	Description  string
	AssigneeID   *string
	DueDate      *time.Time
	Priority     models.TaskPriority `validate:"omitempty,oneof=高 中 低"`
	ParentTaskID *string
	TagIDs       []string `validate:"dive,required"`
}

// UpdateTaskInput represents input for updating a task.
// Nil optional fields leave the stored value unchanged; the Clear flags unset them.
type UpdateTaskInput struct {
	Name          string `validate:"required,max=255"`
	Description   *string
	AssigneeID    *string
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
	Priority      *models.TaskPriority `validate:"omitempty,oneof=高 中 低"`
	Status        models.TaskStatus    `validate:"required,oneof=未着手 進行中 レビュー待ち 完了 保留"`
	TagIDs        *[]string            `validate:"omitempty,dive,required"`
}

// ListTasks returns the tasks of a project, optionally limited to one section.
func (s *TaskService) ListTasks(projectID, userID string, sectionID *string) ([]TaskListItem, error) {
	if _, err := s.guard.Project(projectID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{ProjectID: projectID, SectionID: sectionID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	counts, err := s.taskRepo.CountRelations(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count task relations: %w", err)
	}

	items := make([]TaskListItem, len(tasks))
	for i, task := range tasks {
		items[i] = TaskListItem{Task: task, Counts: counts[task.ID]}
	}
	return items, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID, userID string) (*models.Task, error) {
	if _, _, err := s.guard.Task(taskID, userID); err != nil {
		return nil, err
	}
	return s.loadDetail(taskID)
}

// CreateTask creates a task and notifies its assignee when it is someone else.
func (s *TaskService) CreateTask(userID string, input CreateTaskInput) (*models.Task, []string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.AssigneeID = normalizeID(input.AssigneeID)
	input.ParentTaskID = normalizeID(input.ParentTaskID)
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	project, err := s.guard.Project(input.ProjectID, userID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.ensureSectionInProject(input.SectionID, project.ID); err != nil {
		return nil, nil, err
	}
	if input.ParentTaskID != nil {
		if err := s.ensureParentInProject(*input.ParentTaskID, project.ID); err != nil {
			return nil, nil, err
		}
	}
	if input.AssigneeID != nil {
		if err := s.ensureAssignable(project.WorkspaceID, *input.AssigneeID); err != nil {
			return nil, nil, err
		}
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		ProjectID:    project.ID,
		SectionID:    input.SectionID,
		Name:         input.Name,
		Description:  input.Description,
		AssigneeID:   input.AssigneeID,
		DueDate:      input.DueDate,
		Priority:     input.Priority,
		Status:       models.TaskStatusNotStarted,
		ParentTaskID: input.ParentTaskID,
	}

	if err := s.taskRepo.Create(task, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrUnknownTag) {
			return nil, nil, ErrUnknownTag
		}
		return nil, nil, fmt.Errorf("failed to create task: %w", err)
	}

	var warnings []string
	if task.AssigneeID != nil && *task.AssigneeID != userID {
		warnings = s.emitter.EmitBestEffort(TaskAssignedEvent(*task.AssigneeID, task.Name, project.Name))
	}

	created, err := s.loadDetail(task.ID)
	if err != nil {
		return nil, warnings, err
	}
	return created, warnings, nil
}

// UpdateTask updates an existing task. A newly set assignee other than the
// caller is notified.
func (s *TaskService) UpdateTask(taskID, userID string, input UpdateTaskInput) (*models.Task, []string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.AssigneeID = normalizeID(input.AssigneeID)
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	task, project, err := s.guard.Task(taskID, userID)
	if err != nil {
		return nil, nil, err
	}

	previousAssignee := task.AssigneeID
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if err := s.ensureAssignable(project.WorkspaceID, *input.AssigneeID); err != nil {
			return nil, nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	task.Name = input.Name
	task.Status = input.Status
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrUnknownTag) {
			return nil, nil, ErrUnknownTag
		}
		return nil, nil, fmt.Errorf("failed to update task: %w", err)
	}

	var warnings []string
	if assigneeChanged(previousAssignee, task.AssigneeID) && *task.AssigneeID != userID {
		warnings = s.emitter.EmitBestEffort(TaskAssignedEvent(*task.AssigneeID, task.Name, project.Name))
	}

	updated, err := s.loadDetail(task.ID)
	if err != nil {
		return nil, warnings, err
	}
	return updated, warnings, nil
}

// DeleteTask deletes a task with its sub-tasks, comments, attachments and tag links.
func (s *TaskService) DeleteTask(taskID, userID string) error {
	if _, _, err := s.guard.Task(taskID, userID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// MoveToSection moves a task to another section of the same project.
func (s *TaskService) MoveToSection(taskID, userID, sectionID string) (*models.Task, error) {
	if strings.TrimSpace(sectionID) == "" {
		return nil, invalidInput("section_id is required")
	}

	task, _, err := s.guard.Task(taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSectionInProject(sectionID, task.ProjectID); err != nil {
		return nil, err
	}

	if err := s.taskRepo.MoveToSection(task.ID, sectionID); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}
	return s.loadDetail(task.ID)
}

// SuggestTasksInput represents input for AI task suggestions
type SuggestTasksInput struct {
	ProjectID string `validate:"required"`
	Text      string `validate:"required,max=10000"`
}

// SuggestTasks uses AI to extract task suggestions from text. Nothing is persisted.
func (s *TaskService) SuggestTasks(ctx context.Context, userID string, input SuggestTasksInput) ([]GeneratedTask, error) {
	input.Text = strings.TrimSpace(input.Text)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.guard.Project(input.ProjectID, userID); err != nil {
		return nil, err
	}

	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		aiTasks = aiTasks[:constants.MaxAIGeneratedTasks]
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		aiTask.Name = strings.TrimSpace(aiTask.Name)
		if aiTask.Name == "" {
			continue
		}

		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}

		switch aiTask.Priority {
		case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
		default:
			aiTask.Priority = models.TaskPriorityMedium
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func (s *TaskService) loadDetail(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindDetail(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ensureSectionInProject verifies that a section exists and belongs to the project
func (s *TaskService) ensureSectionInProject(sectionID, projectID string) error {
	section, err := s.sectionRepo.FindByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return fmt.Errorf("failed to find section: %w", err)
	}
	if section.ProjectID != projectID {
		return ErrSectionOutsideProject
	}
	return nil
}

// ensureParentInProject verifies that a parent task exists in the project and is not itself a sub-task
func (s *TaskService) ensureParentInProject(parentID, projectID string) error {
	parent, err := s.taskRepo.FindByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentTaskNotFound
		}
		return fmt.Errorf("failed to find parent task: %w", err)
	}
	if parent.ProjectID != projectID {
		return ErrParentOutsideProject
	}
	if parent.ParentTaskID != nil {
		return ErrNestedSubTask
	}
	return nil
}

// ensureAssignable verifies that the assignee belongs to the workspace
func (s *TaskService) ensureAssignable(workspaceID, assigneeID string) error {
	ok, err := s.guard.IsWorkspaceMember(workspaceID, assigneeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotMember
	}
	return nil
}

// normalizeID treats an empty or blank optional ID as absent
func normalizeID(id *string) *string {
	id = trimPtr(id)
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// assigneeChanged reports whether next names a different, non-empty assignee
func assigneeChanged(previous, next *string) bool {
	if next == nil {
		return false
	}
	return previous == nil || *previous != *next
}
