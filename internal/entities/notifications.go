package entities

import (
	"time"
)

// Notification is an append-only message for a user; the only in-place
// mutation is marking it read.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Message   string    `gorm:"size:255" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
