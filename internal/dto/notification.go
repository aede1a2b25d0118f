package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse represents one page of notifications
type NotificationListResponse struct {
	Items      []NotificationDTO `json:"items"`
	NextCursor *string           `json:"next_cursor"`
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Title:     notification.Title,
		Content:   notification.Content,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

// ToNotificationListResponse converts a page of notifications
func ToNotificationListResponse(items []models.Notification, nextCursor *string) NotificationListResponse {
	dtos := make([]NotificationDTO, len(items))
	for i, n := range items {
		dtos[i] = ToNotificationDTO(n)
	}
	return NotificationListResponse{Items: dtos, NextCursor: nextCursor}
}
