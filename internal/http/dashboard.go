package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/reviews"
)

// DashboardController serves the teacher dashboard.
type DashboardController struct {
	reviews *reviews.Service
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(reviewService *reviews.Service) *DashboardController {
	return &DashboardController{reviews: reviewService}
}

// Leaderboard returns the top books by average student rating in the
// teacher's class. Non-teachers get 404, not 403.
func (dc *DashboardController) Leaderboard(c *gin.Context) {
	viewer := GetUser(c)

	class := c.Query("class")
	if class == "" && viewer != nil {
		class = viewer.SchoolClass
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := dc.reviews.ClassLeaderboard(viewer, class, limit)
	if err != nil {
		if errors.Is(err, reviews.ErrNotTeacher) {
			respondNotFound(c, "page")
			return
		}
		respondInternalError(c, err, "class leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"class": class, "data": entries})
}
