package entities

import (
	"time"
)

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;size:200" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ISBN        string    `gorm:"uniqueIndex;size:17" json:"isbn"`
	CoverURL    string    `gorm:"size:2048;default:'book_covers/default_cover.png'" json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"index;size:100" json:"last_name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BookAuthor links books and authors many-to-many. The pair is the whole
// identity; rows are removed when either side is deleted.
type BookAuthor struct {
	BookID   uint   `gorm:"primaryKey" json:"book_id"`
	AuthorID uint   `gorm:"primaryKey" json:"author_id"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Author   Author `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// Review is a user's one-off rating and commentary on a book. The
// (user_id, book_id) unique index is the source of truth for the
// one-review-per-user-per-book rule; duplicate inserts surface as
// constraint violations, never silent overwrites.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_review_user_book" json:"user_id"`
	BookID     uint      `gorm:"uniqueIndex:idx_review_user_book" json:"book_id"`
	Content    string    `gorm:"type:text" json:"content"`
	StarsGiven int       `json:"stars_given"` // 1..5, validated before persistence
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Book       Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

func (Author) TableName() string {
	return "authors"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (Review) TableName() string {
	return "reviews"
}
