// Package reviews provides database operations for book reviews and their
// aggregates (per-book rating summary, per-class leaderboard).
package reviews

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

// LeaderboardEntry is one aggregated row of the class leaderboard.
type LeaderboardEntry struct {
	Book    entities.Book `json:"book"`
	Average float64       `json:"average"`
	Count   int64         `json:"count"`
}

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateReview inserts a review inside a transaction scoped to just that
// insert. Two concurrent submissions for the same (user, book) race on the
// unique index: exactly one commits, the other returns the constraint
// violation for the service to convert into a conflict.
func (r *Repository) CreateReview(review *entities.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(review).Error
	})
}

// ReviewsForBook returns all reviews for a book with their authors,
// newest first.
func (r *Repository) ReviewsForBook(bookID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// RecentReviews returns the newest reviews across all books, for the home
// feed.
func (r *Repository) RecentReviews(limit int) ([]entities.Review, error) {
	var reviews []entities.Review
	query := r.db.Preload("User").Preload("Book").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&reviews).Error
	return reviews, err
}

// RatingSummary returns the mean stars and review count for a book. The
// average is nil when the book has no reviews; it is never reported as 0.
func (r *Repository) RatingSummary(bookID uint) (*float64, int64, error) {
	var row struct {
		Average sql.NullFloat64
		Count   int64
	}
	err := r.db.Model(&entities.Review{}).
		Select("AVG(stars_given) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return nil, 0, err
	}
	if !row.Average.Valid {
		return nil, row.Count, nil
	}
	avg := row.Average.Float64
	return &avg, row.Count, nil
}

// ClassLeaderboard aggregates reviews written by students of the given
// class, grouped by book and ordered by average stars descending. Book ID
// breaks ties so the order is deterministic.
func (r *Repository) ClassLeaderboard(class string, limit int) ([]LeaderboardEntry, error) {
	var rows []struct {
		BookID  uint
		Average float64
		Count   int64
	}
	query := r.db.Model(&entities.Review{}).
		Select("reviews.book_id AS book_id, AVG(reviews.stars_given) AS average, COUNT(reviews.id) AS count").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("users.role = ? AND users.school_class = ?", entities.RoleStudent, class).
		Group("reviews.book_id").
		Order("average DESC, reviews.book_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []LeaderboardEntry{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.BookID)
	}
	var books []entities.Book
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]entities.Book, len(books))
	for _, book := range books {
		byID[book.ID] = book
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Book:    byID[row.BookID],
			Average: row.Average,
			Count:   row.Count,
		})
	}
	return entries, nil
}
