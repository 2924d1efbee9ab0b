package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookclub/internal/auth"
	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/database"
	booksdb "github.com/mrlokans/bookclub/internal/database/books"
	friendshipsdb "github.com/mrlokans/bookclub/internal/database/friendships"
	notificationsdb "github.com/mrlokans/bookclub/internal/database/notifications"
	reviewsdb "github.com/mrlokans/bookclub/internal/database/reviews"
	usersdb "github.com/mrlokans/bookclub/internal/database/users"
	wishlistdb "github.com/mrlokans/bookclub/internal/database/wishlist"
	"github.com/mrlokans/bookclub/internal/entities"
	"github.com/mrlokans/bookclub/internal/friendships"
	"github.com/mrlokans/bookclub/internal/reviews"
	"github.com/mrlokans/bookclub/internal/users"
	"github.com/mrlokans/bookclub/internal/wishlist"
)

// testApp wires a full router against a throwaway database.
type testApp struct {
	router *gin.Engine
	db     *database.Database
	users  *users.Service
}

func setupApp(t *testing.T) (*testApp, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	userRepo := usersdb.NewRepository(db.DB)
	bookRepo := booksdb.NewRepository(db.DB)
	reviewRepo := reviewsdb.NewRepository(db.DB)
	friendshipRepo := friendshipsdb.NewRepository(db.DB)
	wishlistRepo := wishlistdb.NewRepository(db.DB)
	notificationRepo := notificationsdb.NewRepository(db.DB)

	userService := users.NewService(userRepo, config.Auth{BcryptCost: 4})
	reviewService := reviews.NewService(reviewRepo, bookRepo)

	router := NewRouter(RouterConfig{
		Database:          db,
		AuthMiddleware:    auth.NewMiddleware(userRepo),
		UserService:       userService,
		ReviewService:     reviewService,
		FriendshipService: friendships.NewService(friendshipRepo, userRepo),
		WishlistService:   wishlist.NewService(wishlistRepo, bookRepo, notificationRepo),
		BookStore:         bookRepo,
		NotificationStore: notificationRepo,
		Version:           "test",
	})

	return &testApp{router: router, db: db, users: userService}, cleanup
}

// registerUser creates an account through the service and returns its token.
func (app *testApp) registerUser(t *testing.T, username string, role entities.UserRole, class string) (*entities.User, string) {
	t.Helper()
	user, err := app.users.Register(users.RegisterInput{
		Username:    username,
		Password:    "secret123",
		Role:        role,
		SchoolClass: class,
	})
	require.NoError(t, err)
	return user, user.Token
}

func (app *testApp) createBook(t *testing.T, title, isbn string) entities.Book {
	t.Helper()
	book := entities.Book{Title: title, ISBN: isbn}
	require.NoError(t, app.db.DB.Create(&book).Error)
	return book
}

// request performs an HTTP request against the router, optionally
// authenticated with token, with body marshalled as JSON.
func (app *testApp) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into))
}
