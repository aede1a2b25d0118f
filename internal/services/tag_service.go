package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"gorm.io/gorm"
)

// TagService provides business logic for the global tag catalogue.
type TagService struct {
	tagRepo  repository.TagRepository
	taskRepo repository.TaskRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository, taskRepo repository.TaskRepository) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		taskRepo: taskRepo,
	}
}

// TagInput represents the editable fields of a tag.
type TagInput struct {
	Name  string `validate:"required,max=100"`
	Color string `validate:"required,len=7,hexcolor"`
}

// ListTags returns every tag ordered by name with its task count.
func (s *TagService) ListTags() ([]repository.TagWithCount, error) {
	tags, err := s.tagRepo.ListWithCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetTag returns a tag by ID.
func (s *TagService) GetTag(tagID string) (*models.Tag, error) {
	return s.findTag(tagID)
}

// CreateTag creates a tag with a unique name.
func (s *TagService) CreateTag(input TagInput) (*models.Tag, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(input.Name, ""); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: input.Name, Color: input.Color}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagNameTaken
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// UpdateTag renames or recolors a tag.
func (s *TagService) UpdateTag(tagID string, input TagInput) (*models.Tag, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	tag, err := s.findTag(tagID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(input.Name, tag.ID); err != nil {
		return nil, err
	}

	tag.Name = input.Name
	tag.Color = input.Color
	if err := s.tagRepo.Update(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagNameTaken
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

// DeleteTag deletes a tag that no task references.
func (s *TagService) DeleteTag(tagID string) error {
	if err := s.tagRepo.DeleteIfUnused(tagID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrTagNotFound
		case errors.Is(err, repository.ErrTagInUse):
			return ErrTagInUse
		default:
			return fmt.Errorf("failed to delete tag: %w", err)
		}
	}
	return nil
}

// SearchTasks returns the tasks carrying a tag within the caller's workspaces.
func (s *TagService) SearchTasks(tagID, userID string) ([]models.Task, error) {
	if _, err := s.findTag(tagID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByTag(tagID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

func (s *TagService) findTag(tagID string) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}

func (s *TagService) ensureNameAvailable(name, excludeID string) error {
	taken, err := s.tagRepo.NameTaken(name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check tag name: %w", err)
	}
	if taken {
		return ErrTagNameTaken
	}
	return nil
}
