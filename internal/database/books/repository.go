// Package books provides database operations for the book catalogue:
// listing with substring search, author links and detail lookups.
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Repository handles all book and author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook persists a new book. An ISBN collision surfaces as a
// unique-constraint error for the caller to translate.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetBookByID retrieves a book by ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByISBN retrieves a book by its ISBN.
func (r *Repository) GetBookByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// searchScope filters books by a substring over title, description, ISBN
// and linked author names. Author matches require the joins, so results
// are deduplicated by book ID.
func (r *Repository) searchScope(query string) *gorm.DB {
	scope := r.db.Model(&entities.Book{})
	if query == "" {
		return scope
	}
	pattern := "%" + query + "%"
	return scope.
		Joins("LEFT JOIN book_authors ON book_authors.book_id = books.id").
		Joins("LEFT JOIN authors ON authors.id = book_authors.author_id").
		Where(
			"books.title LIKE ? OR books.description LIKE ? OR books.isbn LIKE ? OR authors.first_name LIKE ? OR authors.last_name LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
}

// ListBooks returns books matching query (all books when empty) ordered by
// title for deterministic pagination, plus the total match count.
func (r *Repository) ListBooks(query string, limit, offset int) ([]entities.Book, int64, error) {
	var total int64
	if err := r.searchScope(query).Distinct("books.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	scope := r.searchScope(query).
		Distinct("books.*").
		Order("books.title ASC")
	if limit > 0 {
		scope = scope.Limit(limit)
	}
	if offset > 0 {
		scope = scope.Offset(offset)
	}
	err := scope.Find(&books).Error
	return books, total, err
}

// DeleteBook removes a book; author links, reviews and wishlist items cascade.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// CreateAuthor persists a new author.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Create(author).Error
}

// ListAuthors returns all authors ordered by (last name, first name).
func (r *Repository) ListAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("last_name ASC, first_name ASC").Find(&authors).Error
	return authors, err
}

// AuthorsForBook returns the authors linked to a book, ordered by
// (last name, first name).
func (r *Repository) AuthorsForBook(bookID uint) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Model(&entities.Author{}).
		Joins("JOIN book_authors ON book_authors.author_id = authors.id").
		Where("book_authors.book_id = ?", bookID).
		Order("authors.last_name ASC, authors.first_name ASC").
		Find(&authors).Error
	return authors, err
}

// AddBookAuthor links a book and an author. Linking the same pair twice
// surfaces as a unique-constraint error.
func (r *Repository) AddBookAuthor(bookID, authorID uint) error {
	return r.db.Create(&entities.BookAuthor{BookID: bookID, AuthorID: authorID}).Error
}
