package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/utils"
	"gorm.io/gorm"
)

// NotificationService manages a user's notifications and the scheduled
// due-soon reminders.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	taskRepo         repository.TaskRepository
	userRepo         repository.UserRepository
	emitter          *Emitter
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	emitter *Emitter,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		emitter:          emitter,
	}
}

// NotificationPage is one page of notifications. NextCursor is nil on the last page.
type NotificationPage struct {
	Items      []models.Notification
	NextCursor *string
}

type listNotificationsInput struct {
	Limit int `validate:"min=1,max=100"`
}

// CreateNotificationInput represents a generic notification.
type CreateNotificationInput struct {
	UserID  string `validate:"required"`
	Title   string `validate:"required,max=255"`
	Content string `validate:"required"`
}

type deleteOldInput struct {
	OlderThan time.Time `validate:"required"`
}

// ListNotifications returns the caller's notifications, newest first.
func (s *NotificationService) ListNotifications(userID string, page utils.CursorParams, unreadOnly bool) (*NotificationPage, error) {
	if err := validateInput(listNotificationsInput{Limit: page.Limit}); err != nil {
		return nil, err
	}

	items, err := s.notificationRepo.List(repository.NotificationFilter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Page:       page,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCursor
		}
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	result := &NotificationPage{Items: items}
	if len(items) > page.Limit {
		next := items[page.Limit].ID
		result.Items = items[:page.Limit]
		result.NextCursor = &next
	}
	return result, nil
}

// GetUnreadCount returns the number of unread notifications of the caller.
func (s *NotificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkAsRead(notificationID, userID string) (*models.Notification, error) {
	notification, err := s.findOwned(notificationID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkRead(notification.ID); err != nil {
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}
	notification.Read = true
	return notification, nil
}

// MarkAllAsRead marks every unread notification of the caller as read.
func (s *NotificationService) MarkAllAsRead(userID string) (int64, error) {
	updated, err := s.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return updated, nil
}

// CreateNotification stores a generic notification for any existing user.
func (s *NotificationService) CreateNotification(input CreateNotificationInput) (*models.Notification, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.emitter.Emit(GenericEvent(input.UserID, input.Title, input.Content))
}

// DeleteNotification deletes one of the caller's notifications.
func (s *NotificationService) DeleteNotification(notificationID, userID string) error {
	if _, err := s.findOwned(notificationID, userID); err != nil {
		return err
	}

	if err := s.notificationRepo.Delete(notificationID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// DeleteOld deletes the caller's read notifications created before olderThan.
// Unread notifications are never deleted.
func (s *NotificationService) DeleteOld(userID string, olderThan time.Time) (int64, error) {
	if err := validateInput(deleteOldInput{OlderThan: olderThan}); err != nil {
		return 0, err
	}

	deleted, err := s.notificationRepo.DeleteReadOlderThan(userID, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}
	return deleted, nil
}

// NotifyDueSoon reminds the assignee of every unfinished task due within
// window of now. It returns the number of notifications stored.
func (s *NotificationService) NotifyDueSoon(now time.Time, window time.Duration) (int, error) {
	tasks, err := s.taskRepo.ListDueBetween(now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks due soon: %w", err)
	}

	sent := 0
	for _, task := range tasks {
		if task.AssigneeID == nil || task.DueDate == nil {
			continue
		}

		event := TaskDueSoonEvent(*task.AssigneeID, task.Name, task.Project.Name, daysUntil(now, *task.DueDate))
		if _, err := s.emitter.Emit(event); err != nil {
			log.Printf("Due-soon reminder for task %s not delivered: %v", task.ID, err)
			continue
		}
		sent++
	}

	return sent, nil
}

func (s *NotificationService) findOwned(notificationID, userID string) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if notification.UserID != userID {
		return nil, ErrNotNotificationOwner
	}
	return notification, nil
}

// daysUntil rounds the time left before due up to whole days.
func daysUntil(now, due time.Time) int {
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
