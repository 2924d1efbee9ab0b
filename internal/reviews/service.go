// Package reviews implements the review workflow: one review per user per
// book, per-book rating summaries and the per-class teacher leaderboard.
package reviews

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/database"
	reviewsdb "github.com/mrlokans/bookclub/internal/database/reviews"
	"github.com/mrlokans/bookclub/internal/entities"
)

// DefaultLeaderboardLimit caps the class leaderboard when the caller does
// not ask for a specific size.
const DefaultLeaderboardLimit = 5

var (
	ErrAlreadyReviewed = errors.New("you have already reviewed this book")
	ErrBookNotFound    = errors.New("book not found")
	ErrNotTeacher      = errors.New("dashboard not found")
)

// ValidationError carries field-level messages so the caller can
// re-display the form. It is returned before any storage access.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// RatingSummary is the aggregate rating of a single book. Average is nil
// when no reviews exist; it is never 0.0 standing in for "no data".
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

// ReviewStore defines the review persistence operations the service needs.
type ReviewStore interface {
	CreateReview(review *entities.Review) error
	ReviewsForBook(bookID uint) ([]entities.Review, error)
	RecentReviews(limit int) ([]entities.Review, error)
	RatingSummary(bookID uint) (*float64, int64, error)
	ClassLeaderboard(class string, limit int) ([]reviewsdb.LeaderboardEntry, error)
}

// BookStore provides book lookups for existence checks.
type BookStore interface {
	GetBookByID(id uint) (*entities.Book, error)
}

// Service implements the review workflow over the stores.
type Service struct {
	reviews ReviewStore
	books   BookStore
}

// NewService creates a new review service.
func NewService(reviews ReviewStore, books BookStore) *Service {
	return &Service{reviews: reviews, books: books}
}

// SubmitReview validates and persists a review for (user, book). Invalid
// input returns a ValidationError without touching storage. The insert
// itself runs in a single transaction; a (user, book) uniqueness violation
// is converted into ErrAlreadyReviewed rather than surfacing as a generic
// failure.
func (s *Service) SubmitReview(userID, bookID uint, content string, stars int) (*entities.Review, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(content) == "" {
		fields["content"] = "content is required"
	}
	if stars < 1 || stars > 5 {
		fields["stars_given"] = "stars must be between 1 and 5"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	review := &entities.Review{
		UserID:     userID,
		BookID:     bookID,
		Content:    content,
		StarsGiven: stars,
	}
	if err := s.reviews.CreateReview(review); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}

// BookRatingSummary returns the mean stars and review count for a book.
func (s *Service) BookRatingSummary(bookID uint) (*RatingSummary, error) {
	average, count, err := s.reviews.RatingSummary(bookID)
	if err != nil {
		return nil, err
	}
	return &RatingSummary{Average: average, Count: count}, nil
}

// ReviewsForBook returns the reviews shown on a book's detail page.
func (s *Service) ReviewsForBook(bookID uint) ([]entities.Review, error) {
	if _, err := s.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return s.reviews.ReviewsForBook(bookID)
}

// RecentReviews returns the newest reviews across all books.
func (s *Service) RecentReviews(limit int) ([]entities.Review, error) {
	return s.reviews.RecentReviews(limit)
}

// ClassLeaderboard returns the top books by average student rating within
// the viewer's class. Only teachers may see it; any other role gets
// ErrNotTeacher, which callers present as "not found" so the page's
// existence is not leaked.
func (s *Service) ClassLeaderboard(viewer *entities.User, class string, limit int) ([]reviewsdb.LeaderboardEntry, error) {
	if viewer == nil || viewer.Role != entities.RoleTeacher {
		return nil, ErrNotTeacher
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return s.reviews.ClassLeaderboard(class, limit)
}
