package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/entities"
)

// NotificationStore defines the notification operations the controller
// needs.
type NotificationStore interface {
	ListForUser(userID uint) ([]entities.Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkAllRead(userID uint) (int64, error)
}

// NotificationsController serves the per-user notification log.
type NotificationsController struct {
	store NotificationStore
}

// NewNotificationsController creates a new NotificationsController.
func NewNotificationsController(store NotificationStore) *NotificationsController {
	return &NotificationsController{store: store}
}

// List returns the authenticated user's notifications, newest first.
func (nc *NotificationsController) List(c *gin.Context) {
	notifications, err := nc.store.ListForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// UnreadCount returns the number of unread notifications.
func (nc *NotificationsController) UnreadCount(c *gin.Context) {
	count, err := nc.store.UnreadCount(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "unread notification count")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkAllRead flags every unread notification as read and reports how many
// were updated.
func (nc *NotificationsController) MarkAllRead(c *gin.Context) {
	updated, err := nc.store.MarkAllRead(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "mark notifications read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": updated})
}
