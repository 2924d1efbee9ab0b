// Package friendships provides database operations for friendship
// requests. The (from_user_id, to_user_id) unique index keeps at most one
// record per ordered pair; the service layer drives the state machine.
package friendships

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Repository handles all friendship request database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new friendships repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateRequest inserts a friendship request. A duplicate ordered pair
// surfaces as a unique-constraint error; the caller treats the stored row
// as authoritative and re-reads it.
func (r *Repository) CreateRequest(req *entities.FriendshipRequest) error {
	return r.db.Create(req).Error
}

// GetRequestByID retrieves a request with both users preloaded.
func (r *Repository) GetRequestByID(id uint) (*entities.FriendshipRequest, error) {
	var req entities.FriendshipRequest
	err := r.db.Preload("FromUser").Preload("ToUser").First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetRequestByPair retrieves the request for the ordered pair (from, to).
func (r *Repository) GetRequestByPair(fromID, toID uint) (*entities.FriendshipRequest, error) {
	var req entities.FriendshipRequest
	err := r.db.Where("from_user_id = ? AND to_user_id = ?", fromID, toID).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateStatus transitions a request to the given status.
func (r *Repository) UpdateStatus(id uint, status entities.FriendshipStatus) error {
	return r.db.Model(&entities.FriendshipRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteRequest removes a request entirely, returning the pair to the
// "no record" state.
func (r *Repository) DeleteRequest(id uint) error {
	return r.db.Delete(&entities.FriendshipRequest{}, id).Error
}

// AcceptedBetween reports whether an accepted request exists in either
// direction. This is the only query that collapses directionality.
func (r *Repository) AcceptedBetween(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.FriendshipRequest{}).
		Where("status = ?", entities.FriendshipAccepted).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// AcceptedForUser returns all accepted requests where the user is either
// side, with both users preloaded.
func (r *Repository) AcceptedForUser(userID uint) ([]entities.FriendshipRequest, error) {
	var requests []entities.FriendshipRequest
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("status = ?", entities.FriendshipAccepted).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Find(&requests).Error
	return requests, err
}

// PendingSent returns the user's outgoing pending requests.
func (r *Repository) PendingSent(userID uint) ([]entities.FriendshipRequest, error) {
	var requests []entities.FriendshipRequest
	err := r.db.Preload("ToUser").
		Where("from_user_id = ? AND status = ?", userID, entities.FriendshipPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// PendingReceived returns the user's incoming pending requests.
func (r *Repository) PendingReceived(userID uint) ([]entities.FriendshipRequest, error) {
	var requests []entities.FriendshipRequest
	err := r.db.Preload("FromUser").
		Where("to_user_id = ? AND status = ?", userID, entities.FriendshipPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// RequestsInvolving returns every request where the user is either side,
// regardless of status.
func (r *Repository) RequestsInvolving(userID uint) ([]entities.FriendshipRequest, error) {
	var requests []entities.FriendshipRequest
	err := r.db.
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Find(&requests).Error
	return requests, err
}
