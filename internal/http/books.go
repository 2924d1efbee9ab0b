package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/entities"
	"github.com/mrlokans/bookclub/internal/reviews"
)

const (
	defaultBooksPageSize = 20
	maxBooksPageSize     = 100
)

// BookStore defines the catalogue operations the controller needs.
type BookStore interface {
	CreateBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	ListBooks(query string, limit, offset int) ([]entities.Book, int64, error)
	DeleteBook(id uint) error
	CreateAuthor(author *entities.Author) error
	ListAuthors() ([]entities.Author, error)
	AuthorsForBook(bookID uint) ([]entities.Author, error)
	AddBookAuthor(bookID, authorID uint) error
}

// BooksController serves the book catalogue.
type BooksController struct {
	store   BookStore
	reviews *reviews.Service
}

// NewBooksController creates a new BooksController.
func NewBooksController(store BookStore, reviewService *reviews.Service) *BooksController {
	return &BooksController{store: store, reviews: reviewService}
}

// List returns books matching the optional q= substring filter, paginated.
func (bc *BooksController) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	limit, offset := parsePagination(c, defaultBooksPageSize, maxBooksPageSize)

	books, total, err := bc.store.ListBooks(query, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    books,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(books)) < total,
	})
}

type bookDetailResponse struct {
	Book    entities.Book          `json:"book"`
	Authors []entities.Author      `json:"authors"`
	Rating  *reviews.RatingSummary `json:"rating"`
	Reviews []entities.Review      `json:"reviews"`
}

// Detail returns a book with its authors, reviews and rating summary.
func (bc *BooksController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	authors, err := bc.store.AuthorsForBook(book.ID)
	if err != nil {
		respondInternalError(c, err, "load book authors")
		return
	}
	bookReviews, err := bc.reviews.ReviewsForBook(book.ID)
	if err != nil {
		respondInternalError(c, err, "load book reviews")
		return
	}
	rating, err := bc.reviews.BookRatingSummary(book.ID)
	if err != nil {
		respondInternalError(c, err, "load book rating")
		return
	}

	c.JSON(http.StatusOK, bookDetailResponse{
		Book:    *book,
		Authors: authors,
		Rating:  rating,
		Reviews: bookReviews,
	})
}

type createBookRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ISBN        string `json:"isbn"`
	CoverURL    string `json:"cover_url"`
	AuthorIDs   []uint `json:"author_ids"`
}

// Create adds a book to the catalogue. Admin only; other roles get 404 so
// the endpoint's existence is not advertised.
func (bc *BooksController) Create(c *gin.Context) {
	user := GetUser(c)
	if user == nil || user.Role != entities.RoleAdmin {
		respondNotFound(c, "page")
		return
	}

	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondValidationError(c, map[string]string{"title": "title is required"})
		return
	}

	book := &entities.Book{
		Title:       req.Title,
		Description: req.Description,
		ISBN:        req.ISBN,
		CoverURL:    req.CoverURL,
	}
	if book.CoverURL == "" {
		book.CoverURL = config.DefaultCoverPicture
	}
	if err := bc.store.CreateBook(book); err != nil {
		if database.IsUniqueViolation(err) {
			respondConflict(c, "a book with this ISBN already exists")
			return
		}
		respondInternalError(c, err, "create book")
		return
	}
	for _, authorID := range req.AuthorIDs {
		if err := bc.store.AddBookAuthor(book.ID, authorID); err != nil && !database.IsUniqueViolation(err) {
			respondInternalError(c, err, "link book author")
			return
		}
	}

	respondCreated(c, book)
}

// Delete removes a book; reviews, wishlist items and author links cascade.
// Admin only, same 404 policy as Create.
func (bc *BooksController) Delete(c *gin.Context) {
	user := GetUser(c)
	if user == nil || user.Role != entities.RoleAdmin {
		respondNotFound(c, "page")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := bc.store.GetBookByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	if err := bc.store.DeleteBook(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}

type createAuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
}

// CreateAuthor adds an author. Admin only, same 404 policy as Create.
func (bc *BooksController) CreateAuthor(c *gin.Context) {
	user := GetUser(c)
	if user == nil || user.Role != entities.RoleAdmin {
		respondNotFound(c, "page")
		return
	}

	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.LastName) == "" {
		respondValidationError(c, map[string]string{"last_name": "last name is required"})
		return
	}

	author := &entities.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Bio:       req.Bio,
	}
	if err := bc.store.CreateAuthor(author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}
	respondCreated(c, author)
}

// ListAuthors returns all authors ordered by name.
func (bc *BooksController) ListAuthors(c *gin.Context) {
	authors, err := bc.store.ListAuthors()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": authors})
}
