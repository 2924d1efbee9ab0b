// Package notifications provides database operations for the per-user
// notification log.
package notifications

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Repository handles all notification database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notifications repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateNotification appends a notification for the user.
func (r *Repository) CreateNotification(userID uint, message string) (*entities.Notification, error) {
	notification := &entities.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := r.db.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

// ListForUser returns the user's notifications, newest first.
func (r *Repository) ListForUser(userID uint) ([]entities.Notification, error) {
	var notifications []entities.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for the user.
func (r *Repository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAllRead flags every unread notification of the user as read and
// returns how many rows were affected.
func (r *Repository) MarkAllRead(userID uint) (int64, error) {
	result := r.db.Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// PurgeReadOlderThan deletes read notifications created before cutoff and
// returns how many were removed. Unread notifications are never purged.
func (r *Repository) PurgeReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&entities.Notification{})
	return result.RowsAffected, result.Error
}
