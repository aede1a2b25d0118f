package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           string              `json:"id"`
	ProjectID    string              `json:"project_id"`
	SectionID    string              `json:"section_id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	AssigneeID   *string             `json:"assignee_id"`
	DueDate      *time.Time          `json:"due_date"`
	Priority     models.TaskPriority `json:"priority"`
	Status       models.TaskStatus   `json:"status"`
	ParentTaskID *string             `json:"parent_task_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Assignee     *UserDTO            `json:"assignee,omitempty"`
	Tags         []TagDTO            `json:"tags"`
}

// TaskListItemDTO represents a task in list responses
type TaskListItemDTO struct {
	TaskDTO
	Counts repository.TaskCounts `json:"counts"`
}

// TaskDetailDTO represents a task with every related entity
type TaskDetailDTO struct {
	TaskDTO
	Project     *ProjectDTO     `json:"project,omitempty"`
	Section     *SectionDTO     `json:"section,omitempty"`
	SubTasks    []TaskDTO       `json:"sub_tasks"`
	Comments    []CommentDTO    `json:"comments"`
	Attachments []AttachmentDTO `json:"attachments"`
}

// TaskSearchResultDTO represents a task found by tag, with its location
type TaskSearchResultDTO struct {
	TaskDTO
	Project   *ProjectDTO   `json:"project,omitempty"`
	Section   *SectionDTO   `json:"section,omitempty"`
	Workspace *WorkspaceDTO `json:"workspace,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		SectionID:    task.SectionID,
		Name:         task.Name,
		Description:  task.Description,
		AssigneeID:   task.AssigneeID,
		DueDate:      task.DueDate,
		Priority:     task.Priority,
		Status:       task.Status,
		ParentTaskID: task.ParentTaskID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		Assignee:     userRef(task.Assignee),
		Tags:         make([]TagDTO, 0, len(task.TaskTags)),
	}

	// Include tags if preloaded
	for _, link := range task.TaskTags {
		if link.Tag.ID != "" {
			dto.Tags = append(dto.Tags, ToTagDTO(link.Tag))
		}
	}

	return dto
}

// ToTaskListItemDTO converts a task and its relation counts
func ToTaskListItemDTO(task models.Task, counts repository.TaskCounts) TaskListItemDTO {
	return TaskListItemDTO{
		TaskDTO: ToTaskDTO(task),
		Counts:  counts,
	}
}

// ToTaskDetailDTO converts a task loaded with its detail relations
func ToTaskDetailDTO(task models.Task) TaskDetailDTO {
	dto := TaskDetailDTO{
		TaskDTO:     ToTaskDTO(task),
		SubTasks:    make([]TaskDTO, len(task.SubTasks)),
		Comments:    make([]CommentDTO, len(task.Comments)),
		Attachments: make([]AttachmentDTO, len(task.Attachments)),
	}

	// Include project if preloaded
	if task.Project.ID != "" {
		project := ToProjectDTO(task.Project)
		dto.Project = &project
	}

	// Include section if preloaded
	if task.Section.ID != "" {
		section := ToSectionDTO(task.Section)
		dto.Section = &section
	}

	for i, sub := range task.SubTasks {
		dto.SubTasks[i] = ToTaskDTO(sub)
	}
	for i, comment := range task.Comments {
		dto.Comments[i] = ToCommentDTO(comment)
	}
	for i, attachment := range task.Attachments {
		dto.Attachments[i] = ToAttachmentDTO(attachment)
	}

	return dto
}

// ToTaskSearchResultDTO converts a task loaded with project, workspace and section
func ToTaskSearchResultDTO(task models.Task) TaskSearchResultDTO {
	dto := TaskSearchResultDTO{TaskDTO: ToTaskDTO(task)}

	if task.Project.ID != "" {
		project := ToProjectDTO(task.Project)
		dto.Project = &project

		if task.Project.Workspace.ID != "" {
			workspace := ToWorkspaceDTO(task.Project.Workspace, false)
			dto.Workspace = &workspace
		}
	}

	if task.Section.ID != "" {
		section := ToSectionDTO(task.Section)
		dto.Section = &section
	}

	return dto
}
