package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string               `json:"id"`
	WorkspaceID string               `json:"workspace_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	DueDate     *time.Time           `json:"due_date"`
	Status      models.ProjectStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProjectListItemDTO represents a project with its task count
type ProjectListItemDTO struct {
	ProjectDTO
	TaskCount int64 `json:"task_count"`
}

// ProjectDetailDTO represents a project with its sections and their tasks
type ProjectDetailDTO struct {
	ProjectDTO
	Sections []SectionDTO `json:"sections"`
}

// SectionDTO represents a section in API responses
type SectionDTO struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tasks     []TaskDTO `json:"tasks,omitempty"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		WorkspaceID: project.WorkspaceID,
		Name:        project.Name,
		Description: project.Description,
		DueDate:     project.DueDate,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDetailDTO converts a project with preloaded sections and tasks
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Sections:   ToSectionDTOs(project.Sections),
	}
}

// ToSectionDTO converts a Section model, including its tasks when preloaded
func ToSectionDTO(section models.Section) SectionDTO {
	dto := SectionDTO{
		ID:        section.ID,
		ProjectID: section.ProjectID,
		Name:      section.Name,
		Order:     section.Order,
		CreatedAt: section.CreatedAt,
		UpdatedAt: section.UpdatedAt,
	}

	if len(section.Tasks) > 0 {
		dto.Tasks = make([]TaskDTO, len(section.Tasks))
		for i, task := range section.Tasks {
			dto.Tasks[i] = ToTaskDTO(task)
		}
	}

	return dto
}

// ToSectionDTOs converts a slice of sections
func ToSectionDTOs(sections []models.Section) []SectionDTO {
	dtos := make([]SectionDTO, len(sections))
	for i, section := range sections {
		dtos[i] = ToSectionDTO(section)
	}
	return dtos
}
