// Package wishlist provides database operations for wishlist membership.
package wishlist

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/entities"
)

// Repository handles all wishlist database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new wishlist repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts the item if absent. It reports whether a row was
// actually created: a unique violation on the (user, book) index means the
// item was already present and is not an error.
func (r *Repository) AddItem(item *entities.WishlistItem) (bool, error) {
	err := r.db.Create(item).Error
	if database.IsUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveItem deletes the (user, book) item if present; removing an absent
// item is a no-op.
func (r *Repository) RemoveItem(userID, bookID uint) error {
	return r.db.
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.WishlistItem{}).Error
}

// ListForUser returns the user's wishlist with books preloaded, newest
// first.
func (r *Repository) ListForUser(userID uint) ([]entities.WishlistItem, error) {
	var items []entities.WishlistItem
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Contains reports whether the book is on the user's wishlist.
func (r *Repository) Contains(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.WishlistItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}
