package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
)

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TagListItemDTO represents a tag with the number of tasks using it
type TagListItemDTO struct {
	TagDTO
	TaskCount int64 `json:"task_count"`
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:        tag.ID,
		Name:      tag.Name,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
	}
}

// ToTagListItemDTOs converts tags with counts
func ToTagListItemDTOs(tags []repository.TagWithCount) []TagListItemDTO {
	dtos := make([]TagListItemDTO, len(tags))
	for i, tag := range tags {
		dtos[i] = TagListItemDTO{
			TagDTO:    ToTagDTO(tag.Tag),
			TaskCount: tag.TaskCount,
		}
	}
	return dtos
}
