package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/reviews"
)

const defaultRecentReviews = 10

// ReviewsController handles review submission and listings.
type ReviewsController struct {
	service *reviews.Service
}

// NewReviewsController creates a new ReviewsController.
func NewReviewsController(service *reviews.Service) *ReviewsController {
	return &ReviewsController{service: service}
}

type submitReviewRequest struct {
	Content    string `json:"content"`
	StarsGiven int    `json:"stars_given"`
}

// Submit creates the authenticated user's review of a book. A second
// review of the same book is rejected with 409.
func (rc *ReviewsController) Submit(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	review, err := rc.service.SubmitReview(GetUserID(c), bookID, req.Content, req.StarsGiven)
	if err != nil {
		var validation *reviews.ValidationError
		switch {
		case errors.As(err, &validation):
			respondValidationError(c, validation.Fields)
		case errors.Is(err, reviews.ErrBookNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, reviews.ErrAlreadyReviewed):
			respondConflict(c, err.Error())
		default:
			respondInternalError(c, err, "submit review")
		}
		return
	}

	respondCreated(c, review)
}

// ForBook returns a book's reviews, newest first.
func (rc *ReviewsController) ForBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookReviews, err := rc.service.ReviewsForBook(bookID)
	if err != nil {
		if errors.Is(err, reviews.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookReviews})
}

// Rating returns a book's aggregate rating.
func (rc *ReviewsController) Rating(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	summary, err := rc.service.BookRatingSummary(bookID)
	if err != nil {
		respondInternalError(c, err, "book rating")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Recent returns the newest reviews across all books.
func (rc *ReviewsController) Recent(c *gin.Context) {
	limit, _ := parsePagination(c, defaultRecentReviews, 50)
	recent, err := rc.service.RecentReviews(limit)
	if err != nil {
		respondInternalError(c, err, "recent reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recent})
}
