// Package wishlist implements wishlist membership with its notification
// side effect.
package wishlist

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

var ErrBookNotFound = errors.New("book not found")

// Store defines the wishlist persistence operations.
type Store interface {
	AddItem(item *entities.WishlistItem) (bool, error)
	RemoveItem(userID, bookID uint) error
	ListForUser(userID uint) ([]entities.WishlistItem, error)
}

// BookStore provides book lookups for existence checks.
type BookStore interface {
	GetBookByID(id uint) (*entities.Book, error)
}

// NotificationStore appends notifications.
type NotificationStore interface {
	CreateNotification(userID uint, message string) (*entities.Notification, error)
}

// Service implements the wishlist workflow.
type Service struct {
	store         Store
	books         BookStore
	notifications NotificationStore
}

// NewService creates a new wishlist service.
func NewService(store Store, books BookStore, notifications NotificationStore) *Service {
	return &Service{store: store, books: books, notifications: notifications}
}

// AddToWishlist puts the book on the user's wishlist. Adding an
// already-present book is a no-op. A notification is written only when a
// row was actually created, so repeated adds never duplicate it. It
// reports whether the book was newly added.
func (s *Service) AddToWishlist(userID, bookID uint) (bool, error) {
	book, err := s.books.GetBookByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBookNotFound
		}
		return false, err
	}

	added, err := s.store.AddItem(&entities.WishlistItem{UserID: userID, BookID: bookID})
	if err != nil {
		return false, err
	}
	if added {
		message := fmt.Sprintf("%q was added to your wishlist.", book.Title)
		if _, err := s.notifications.CreateNotification(userID, message); err != nil {
			// Notification delivery is fire-and-forget; the wishlist write
			// already succeeded.
			log.Printf("Failed to write wishlist notification for user %d: %v", userID, err)
		}
	}
	return added, nil
}

// RemoveFromWishlist takes the book off the user's wishlist; removing a
// book that is not on it is a no-op and no notification is written.
func (s *Service) RemoveFromWishlist(userID, bookID uint) error {
	return s.store.RemoveItem(userID, bookID)
}

// ListWishlist returns the user's wishlist, newest first.
func (s *Service) ListWishlist(userID uint) ([]entities.WishlistItem, error) {
	return s.store.ListForUser(userID)
}
