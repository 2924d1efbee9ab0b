package entities

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleParent  UserRole = "parent"
	RoleAdmin   UserRole = "admin"
)

// Valid reports whether the role is one of the known roles.
// Roles are a closed enumeration; anything else is rejected at the service layer.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	}
	return false
}

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;size:100" json:"username"`
	FirstName      string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName       string    `gorm:"size:100" json:"last_name,omitempty"`
	Email          string    `gorm:"size:255" json:"email,omitempty"`
	PasswordHash   string    `gorm:"size:100" json:"-"`
	Token          string    `gorm:"uniqueIndex;size:64" json:"-"` // API token, hidden from JSON
	Role           UserRole  `gorm:"size:20;default:'student'" json:"role"`
	SchoolClass    string    `gorm:"size:10" json:"school_class,omitempty"`
	ProfilePicture string    `gorm:"size:2048" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FriendshipRequest is a directional proposal from one user to another.
// (A→B) and (B→A) are distinct records; the pair becomes symmetric friends
// only once a request is accepted. At most one record exists per ordered pair.
type FriendshipRequest struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	FromUserID uint             `gorm:"uniqueIndex:idx_friendship_pair" json:"from_user_id"`
	ToUserID   uint             `gorm:"uniqueIndex:idx_friendship_pair" json:"to_user_id"`
	Status     FriendshipStatus `gorm:"size:20;default:'pending'" json:"status"`
	FromUser   User             `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE" json:"from_user,omitempty"`
	ToUser     User             `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE" json:"to_user,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (FriendshipRequest) TableName() string {
	return "friendship_requests"
}
