package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// Create creates a new tag
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Omit(clause.Associations).Create(tag).Error
}

// FindByID finds a tag by ID
func (r *GormTagRepository) FindByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// NameTaken reports whether a tag other than excludeID already uses name
func (r *GormTagRepository) NameTaken(name, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&models.Tag{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// ListWithCounts lists tags by name together with the number of linked tasks
func (r *GormTagRepository) ListWithCounts() ([]TagWithCount, error) {
	var tags []models.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	counts, err := countBy(r.db, &models.TaskTag{}, "tag_id", ids)
	if err != nil {
		return nil, err
	}

	result := make([]TagWithCount, len(tags))
	for i, tag := range tags {
		result[i] = TagWithCount{Tag: tag, TaskCount: counts[tag.ID]}
	}
	return result, nil
}

// Update updates a tag
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Omit(clause.Associations).Save(tag).Error
}

// DeleteIfUnused deletes a tag when no task links to it. The tag row stays
// locked between the usage check and the delete.
func (r *GormTagRepository) DeleteIfUnused(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tag, "id = ?", id).Error; err != nil {
			return err
		}

		var links int64
		if err := tx.Model(&models.TaskTag{}).Where("tag_id = ?", id).Count(&links).Error; err != nil {
			return err
		}
		if links > 0 {
			return ErrTagInUse
		}

		return tx.Delete(&tag).Error
	})
}
