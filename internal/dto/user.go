package dto

import "github.com/yukikurage/workspace-task-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image"`
}

// ToUserDTO converts a User model to UserDTO, including the email address
func ToUserDTO(user models.User) UserDTO {
	dto := ToUserSummaryDTO(user)
	dto.Email = user.Email
	return dto
}

// ToUserSummaryDTO converts a User model to the public id/name/image shape
func ToUserSummaryDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Image: user.Image,
	}
}

// userRef returns a summary DTO when the user was preloaded
func userRef(user *models.User) *UserDTO {
	if user == nil || user.ID == "" {
		return nil
	}
	dto := ToUserSummaryDTO(*user)
	return &dto
}

// Warnings never renders as null
func Warnings(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	return warnings
}
