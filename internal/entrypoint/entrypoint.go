package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/auth"
	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/database"
	booksdb "github.com/mrlokans/bookclub/internal/database/books"
	friendshipsdb "github.com/mrlokans/bookclub/internal/database/friendships"
	notificationsdb "github.com/mrlokans/bookclub/internal/database/notifications"
	reviewsdb "github.com/mrlokans/bookclub/internal/database/reviews"
	usersdb "github.com/mrlokans/bookclub/internal/database/users"
	wishlistdb "github.com/mrlokans/bookclub/internal/database/wishlist"
	"github.com/mrlokans/bookclub/internal/friendships"
	http_controllers "github.com/mrlokans/bookclub/internal/http"
	"github.com/mrlokans/bookclub/internal/reviews"
	"github.com/mrlokans/bookclub/internal/scheduler"
	"github.com/mrlokans/bookclub/internal/users"
	"github.com/mrlokans/bookclub/internal/wishlist"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM and then shuts it down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the database, repositories, services and router together and
// serves HTTP.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookclub v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := usersdb.NewRepository(db.DB)
	bookRepo := booksdb.NewRepository(db.DB)
	reviewRepo := reviewsdb.NewRepository(db.DB)
	friendshipRepo := friendshipsdb.NewRepository(db.DB)
	wishlistRepo := wishlistdb.NewRepository(db.DB)
	notificationRepo := notificationsdb.NewRepository(db.DB)

	userService := users.NewService(userRepo, cfg.Auth)
	reviewService := reviews.NewService(reviewRepo, bookRepo)
	friendshipService := friendships.NewService(friendshipRepo, userRepo)
	wishlistService := wishlist.NewService(wishlistRepo, bookRepo, notificationRepo)

	cleanupScheduler := scheduler.NewNotificationCleanupScheduler(notificationRepo, cfg.Notifications)
	if err := cleanupScheduler.Start(context.Background()); err != nil {
		log.Printf("WARNING: Failed to start notification cleanup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:          db,
		AuthMiddleware:    auth.NewMiddleware(userRepo),
		UserService:       userService,
		ReviewService:     reviewService,
		FriendshipService: friendshipService,
		WishlistService:   wishlistService,
		BookStore:         bookRepo,
		NotificationStore: notificationRepo,
		Version:           version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		cleanupScheduler.Stop()
	})
}
