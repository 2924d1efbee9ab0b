package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/wishlist"
)

// WishlistController handles the authenticated user's wishlist.
type WishlistController struct {
	service *wishlist.Service
}

// NewWishlistController creates a new WishlistController.
func NewWishlistController(service *wishlist.Service) *WishlistController {
	return &WishlistController{service: service}
}

// Add puts a book on the wishlist. Re-adding is a no-op and reports 200
// instead of 201.
func (wc *WishlistController) Add(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	added, err := wc.service.AddToWishlist(GetUserID(c), bookID)
	if err != nil {
		if errors.Is(err, wishlist.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "add to wishlist")
		return
	}

	if added {
		c.JSON(http.StatusCreated, SuccessResponse{Message: "book added to wishlist"})
		return
	}
	respondSuccess(c, "book already on wishlist")
}

// Remove takes a book off the wishlist; removing an absent book succeeds.
func (wc *WishlistController) Remove(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := wc.service.RemoveFromWishlist(GetUserID(c), bookID); err != nil {
		respondInternalError(c, err, "remove from wishlist")
		return
	}
	respondSuccess(c, "book removed from wishlist")
}

// List returns the authenticated user's wishlist, newest first.
func (wc *WishlistController) List(c *gin.Context) {
	items, err := wc.service.ListWishlist(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list wishlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
