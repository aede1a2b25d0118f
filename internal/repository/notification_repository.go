package repository

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// List returns at most Page.Limit+1 notifications ordered by (created_at, id)
// descending. A non-empty cursor starts the page at that notification.
func (r *GormNotificationRepository) List(filter NotificationFilter) ([]models.Notification, error) {
	query := r.db.Model(&models.Notification{}).Where("notifications.user_id = ?", filter.UserID)
	if filter.UnreadOnly {
		query = query.Where("notifications.is_read = ?", false)
	}

	if filter.Page.Cursor != "" {
		var cursor models.Notification
		if err := r.db.
			Where("id = ? AND user_id = ?", filter.Page.Cursor, filter.UserID).
			First(&cursor).Error; err != nil {
			return nil, err
		}
		query = query.Where(
			"(notifications.created_at < ? OR (notifications.created_at = ? AND notifications.id <= ?))",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var notifications []models.Notification
	err := query.
		Scopes(database.NewestFirst("notifications"), database.CursorPage(filter.Page)).
		Find(&notifications).Error
	return notifications, err
}

// CountUnread counts the unread notifications of a user
func (r *GormNotificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks a notification as read
func (r *GormNotificationRepository) MarkRead(id string) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkAllRead marks every unread notification of a user as read
func (r *GormNotificationRepository) MarkAllRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// Delete deletes a notification
func (r *GormNotificationRepository) Delete(id string) error {
	return r.db.Delete(&models.Notification{}, "id = ?", id).Error
}

// DeleteReadOlderThan deletes read notifications of a user created before cutoff
func (r *GormNotificationRepository) DeleteReadOlderThan(userID string, cutoff time.Time) (int64, error) {
	result := r.db.
		Where("user_id = ? AND is_read = ? AND created_at < ?", userID, true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
