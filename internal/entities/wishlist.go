package entities

import (
	"time"
)

// WishlistItem bookmarks a book for a user. Membership is a set: the
// (user_id, book_id) unique index makes repeated adds a no-op upstream.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_wishlist_user_book" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_wishlist_user_book" json:"book_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book      Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
