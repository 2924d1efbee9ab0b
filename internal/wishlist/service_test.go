package wishlist

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookclub/internal/database"
	booksdb "github.com/mrlokans/bookclub/internal/database/books"
	notificationsdb "github.com/mrlokans/bookclub/internal/database/notifications"
	wishlistdb "github.com/mrlokans/bookclub/internal/database/wishlist"
	"github.com/mrlokans/bookclub/internal/entities"
)

func setupService(t *testing.T) (*Service, *notificationsdb.Repository, *database.Database, func()) {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	notifications := notificationsdb.NewRepository(db.DB)
	service := NewService(wishlistdb.NewRepository(db.DB), booksdb.NewRepository(db.DB), notifications)
	return service, notifications, db, cleanup
}

func TestAddToWishlist(t *testing.T) {
	service, notifications, db, cleanup := setupService(t)
	defer cleanup()

	user := entities.User{Username: "alice", Token: "token-alice"}
	book := entities.Book{Title: "The Secret Garden", ISBN: "isbn-sg"}
	require.NoError(t, db.DB.Create(&user).Error)
	require.NoError(t, db.DB.Create(&book).Error)

	t.Run("first add creates item and exactly one notification", func(t *testing.T) {
		added, err := service.AddToWishlist(user.ID, book.ID)
		require.NoError(t, err)
		assert.True(t, added)

		items, err := service.ListWishlist(user.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)

		all, err := notifications.ListForUser(user.ID)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Contains(t, all[0].Message, "The Secret Garden")
	})

	t.Run("repeated add is a no-op and does not notify again", func(t *testing.T) {
		added, err := service.AddToWishlist(user.ID, book.ID)
		require.NoError(t, err)
		assert.False(t, added)

		items, err := service.ListWishlist(user.ID)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		all, err := notifications.ListForUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := service.AddToWishlist(user.ID, 99999)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestRemoveFromWishlist(t *testing.T) {
	service, notifications, db, cleanup := setupService(t)
	defer cleanup()

	user := entities.User{Username: "bob", Token: "token-bob"}
	book := entities.Book{Title: "Treasure Island", ISBN: "isbn-ti"}
	require.NoError(t, db.DB.Create(&user).Error)
	require.NoError(t, db.DB.Create(&book).Error)

	t.Run("removing an absent book succeeds silently", func(t *testing.T) {
		require.NoError(t, service.RemoveFromWishlist(user.ID, book.ID))

		all, err := notifications.ListForUser(user.ID)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("remove then re-add notifies again", func(t *testing.T) {
		_, err := service.AddToWishlist(user.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, service.RemoveFromWishlist(user.ID, book.ID))

		added, err := service.AddToWishlist(user.ID, book.ID)
		require.NoError(t, err)
		assert.True(t, added)

		all, err := notifications.ListForUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
