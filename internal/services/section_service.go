package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"gorm.io/gorm"
)

// SectionService provides business logic for section operations.
type SectionService struct {
	sectionRepo repository.SectionRepository
	guard       *AccessGuard
}

// NewSectionService creates a new SectionService.
func NewSectionService(sectionRepo repository.SectionRepository, guard *AccessGuard) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		guard:       guard,
	}
}

type sectionNameInput struct {
	Name string `validate:"required,max=255"`
}

type reorderInput struct {
	Order int `validate:"gte=0"`
}

// ListSections returns the sections of a project in order, with their tasks.
func (s *SectionService) ListSections(projectID, userID string) ([]models.Section, error) {
	if _, err := s.guard.Project(projectID, userID); err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// CreateSection appends a section to a project.
func (s *SectionService) CreateSection(projectID, userID, name string) (*models.Section, error) {
	input := sectionNameInput{Name: strings.TrimSpace(name)}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.guard.Project(projectID, userID); err != nil {
		return nil, err
	}

	section := &models.Section{ProjectID: projectID, Name: input.Name}
	if err := s.sectionRepo.CreateAtEnd(section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	return section, nil
}

// UpdateSection renames a section.
func (s *SectionService) UpdateSection(sectionID, userID, name string) (*models.Section, error) {
	input := sectionNameInput{Name: strings.TrimSpace(name)}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	section, _, err := s.guard.Section(sectionID, userID)
	if err != nil {
		return nil, err
	}

	section.Name = input.Name
	if err := s.sectionRepo.Update(section); err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}
	return section, nil
}

// DeleteSection deletes a section and its tasks.
func (s *SectionService) DeleteSection(sectionID, userID string) error {
	if _, _, err := s.guard.Section(sectionID, userID); err != nil {
		return err
	}

	if err := s.sectionRepo.Delete(sectionID); err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	return nil
}

// ReorderSection moves a section to order, shifting the sections at or after
// that position by one.
func (s *SectionService) ReorderSection(sectionID, userID string, order int) (*models.Section, error) {
	if err := validateInput(reorderInput{Order: order}); err != nil {
		return nil, err
	}

	if _, _, err := s.guard.Section(sectionID, userID); err != nil {
		return nil, err
	}

	section, err := s.sectionRepo.Reorder(sectionID, order)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to reorder section: %w", err)
	}
	return section, nil
}
