package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// NotificationHandler serves notification endpoints.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns a page of the caller's notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	params, err := utils.GetCursorParams(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid limit")
		return
	}

	unreadOnly := false
	if raw := c.Query("unread_only"); raw != "" {
		unreadOnly, err = strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid unread_only")
			return
		}
	}

	page, err := h.notificationService.ListNotifications(userID, params, unreadOnly)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationListResponse(page.Items, page.NextCursor))
}

// GetUnreadCount returns the number of unread notifications.
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAsRead marks one notification as read.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkAsRead(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// MarkAllAsRead marks every notification of the caller as read.
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllAsRead(userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// CreateNotification stores a generic notification for a user.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	type CreateNotificationRequest struct {
		UserID  string `json:"user_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	var req CreateNotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	notification, err := h.notificationService.CreateNotification(services.CreateNotificationInput{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNotificationDTO(*notification))
}

// DeleteNotification deletes one of the caller's notifications.
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(c.Param("id"), userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

// DeleteOldNotifications deletes the caller's read notifications older than older_than.
func (h *NotificationHandler) DeleteOldNotifications(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type DeleteOldRequest struct {
		OlderThan time.Time `json:"older_than"`
	}

	var req DeleteOldRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := h.notificationService.DeleteOld(userID, req.OlderThan)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
