package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateWorkspace is returned when creating the personal workspace fails inside the signup transaction.
	ErrCreateWorkspace = errors.New("user repository: create workspace failed")
	// ErrCreateWorkspaceMember is returned when creating the owner membership fails inside the signup transaction.
	ErrCreateWorkspaceMember = errors.New("user repository: create workspace member failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithPersonalWorkspace creates a user, a personal workspace, and the owner membership atomically.
func (r *GormUserRepository) CreateWithPersonalWorkspace(user *models.User, workspace *models.Workspace, member *models.WorkspaceMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		workspace.OwnerID = user.ID
		if err := tx.Create(workspace).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateWorkspace, err)
		}

		member.WorkspaceID = workspace.ID
		member.UserID = user.ID

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateWorkspaceMember, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
