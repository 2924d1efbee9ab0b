package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	usersController := NewUsersController(cfg.UserService)
	booksController := NewBooksController(cfg.BookStore, cfg.ReviewService)
	reviewsController := NewReviewsController(cfg.ReviewService)
	friendshipsController := NewFriendshipsController(cfg.FriendshipService)
	wishlistController := NewWishlistController(cfg.WishlistService)
	notificationsController := NewNotificationsController(cfg.NotificationStore)
	dashboardController := NewDashboardController(cfg.ReviewService)

	api := router.Group("/api")

	// Public endpoints
	api.POST("/users/register", usersController.Register)
	api.POST("/users/login", usersController.Login)
	api.GET("/books", booksController.List)
	api.GET("/books/:id", booksController.Detail)
	api.GET("/books/:id/reviews", reviewsController.ForBook)
	api.GET("/books/:id/rating", reviewsController.Rating)
	api.GET("/reviews/recent", reviewsController.Recent)
	api.GET("/authors", booksController.ListAuthors)

	// Authenticated endpoints
	authed := api.Group("")
	authed.Use(auth.RequireAuth())

	authed.GET("/users/me", usersController.Me)
	authed.PATCH("/users/me", usersController.UpdateMe)
	authed.GET("/users/:id", usersController.Profile)
	authed.GET("/users/:id/relationship", friendshipsController.Relationship)

	authed.POST("/books", booksController.Create)
	authed.DELETE("/books/:id", booksController.Delete)
	authed.POST("/authors", booksController.CreateAuthor)
	authed.POST("/books/:id/reviews", reviewsController.Submit)

	authed.POST("/friendships/requests", friendshipsController.Send)
	authed.POST("/friendships/requests/:id/:action", friendshipsController.Respond)
	authed.GET("/friendships/requests", friendshipsController.Requests)
	authed.GET("/friendships", friendshipsController.Friends)
	authed.GET("/people", friendshipsController.People)

	authed.POST("/wishlist/:id", wishlistController.Add)
	authed.DELETE("/wishlist/:id", wishlistController.Remove)
	authed.GET("/wishlist", wishlistController.List)

	authed.GET("/notifications", notificationsController.List)
	authed.GET("/notifications/unread-count", notificationsController.UnreadCount)
	authed.POST("/notifications/mark-all-read", notificationsController.MarkAllRead)

	authed.GET("/dashboard/leaderboard", dashboardController.Leaderboard)

	return router
}
