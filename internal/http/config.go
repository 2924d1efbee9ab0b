package http

import (
	"github.com/mrlokans/bookclub/internal/auth"
	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/friendships"
	"github.com/mrlokans/bookclub/internal/reviews"
	"github.com/mrlokans/bookclub/internal/users"
	"github.com/mrlokans/bookclub/internal/wishlist"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. This replaces a long parameter list in
// NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Authentication
	AuthMiddleware *auth.Middleware

	// Services
	UserService       *users.Service
	ReviewService     *reviews.Service
	FriendshipService *friendships.Service
	WishlistService   *wishlist.Service

	// Stores consumed directly by controllers
	BookStore         BookStore
	NotificationStore NotificationStore

	// Application info
	Version string
}
