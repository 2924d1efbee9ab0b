// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByToken(token)
package users

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser persists a new user. A username collision surfaces as a
// unique-constraint error for the caller to translate.
func (r *Repository) CreateUser(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByToken retrieves a user by their API token.
func (r *Repository) GetUserByToken(token string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser saves changes to an existing user.
func (r *Repository) UpdateUser(user *entities.User) error {
	return r.db.Save(user).Error
}

// ListUsers returns all users except excludeID, ordered by username.
func (r *Repository) ListUsers(excludeID uint) ([]entities.User, error) {
	var users []entities.User
	query := r.db.Order("username ASC")
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Find(&users).Error
	return users, err
}

// DeleteUser removes a user; reviews, wishlist items, friendship requests
// and notifications cascade.
func (r *Repository) DeleteUser(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}
