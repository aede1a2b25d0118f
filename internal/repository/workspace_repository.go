package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// CreateWithOwner creates a workspace and its owner membership in one transaction
func (r *GormWorkspaceRepository) CreateWithOwner(workspace *models.Workspace, owner *models.WorkspaceMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(workspace).Error; err != nil {
			return err
		}

		owner.WorkspaceID = workspace.ID
		owner.UserID = workspace.OwnerID
		return tx.Omit(clause.Associations).Create(owner).Error
	})
}

// FindByID finds a workspace by ID
func (r *GormWorkspaceRepository) FindByID(id string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.First(&workspace, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// FindByIDWithMembers finds a workspace with owner and members preloaded
func (r *GormWorkspaceRepository) FindByIDWithMembers(id string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.
		Preload("Owner").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Members.User").
		First(&workspace, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// FindByInviteCode finds a workspace by invite code
func (r *GormWorkspaceRepository) FindByInviteCode(code string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.Where("invite_code = ?", code).First(&workspace).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// ListForUser lists the workspaces userID is a member of, oldest first
func (r *GormWorkspaceRepository) ListForUser(userID string) ([]models.Workspace, error) {
	var workspaces []models.Workspace

	err := r.db.
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Preload("Owner").
		Preload("Members.User").
		Order("workspaces.created_at ASC").
		Find(&workspaces).Error

	return workspaces, err
}

// CountProjects returns the number of projects per workspace
func (r *GormWorkspaceRepository) CountProjects(workspaceIDs []string) (map[string]int64, error) {
	return countBy(r.db, &models.Project{}, "workspace_id", workspaceIDs)
}

// Update updates a workspace
func (r *GormWorkspaceRepository) Update(workspace *models.Workspace) error {
	return r.db.Omit(clause.Associations).Save(workspace).Error
}

// Delete deletes a workspace with its projects, sections, tasks and memberships
func (r *GormWorkspaceRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		projectIDs := tx.Model(&models.Project{}).Select("id").Where("workspace_id = ?", id)

		if err := purgeTasks(tx, func(db *gorm.DB) *gorm.DB {
			return db.Where("project_id IN (?)", projectIDs)
		}); err != nil {
			return err
		}
		if err := tx.Where("project_id IN (?)", projectIDs).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.WorkspaceMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workspace{}, "id = ?", id).Error
	})
}

// AddMember adds a member to a workspace
func (r *GormWorkspaceRepository) AddMember(member *models.WorkspaceMember) error {
	return r.db.Omit(clause.Associations).Create(member).Error
}

// RemoveMember removes a member from a workspace
func (r *GormWorkspaceRepository) RemoveMember(workspaceID, userID string) error {
	return r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&models.WorkspaceMember{}).Error
}

// FindMember finds a specific workspace member
func (r *GormWorkspaceRepository) FindMember(workspaceID, userID string) (*models.WorkspaceMember, error) {
	var member models.WorkspaceMember
	if err := r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// IsMember reports whether userID belongs to workspaceID
func (r *GormWorkspaceRepository) IsMember(workspaceID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	return count > 0, err
}
