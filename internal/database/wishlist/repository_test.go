package wishlist

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/entities"
)

func setupRepo(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), db, cleanup
}

func TestAddItem(t *testing.T) {
	repo, db, cleanup := setupRepo(t)
	defer cleanup()

	user := entities.User{Username: "alice", Token: "token-alice"}
	book := entities.Book{Title: "Persuasion", ISBN: "isbn-p"}
	require.NoError(t, db.DB.Create(&user).Error)
	require.NoError(t, db.DB.Create(&book).Error)

	t.Run("first add creates a row", func(t *testing.T) {
		added, err := repo.AddItem(&entities.WishlistItem{UserID: user.ID, BookID: book.ID})
		require.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("second add is a silent no-op", func(t *testing.T) {
		added, err := repo.AddItem(&entities.WishlistItem{UserID: user.ID, BookID: book.ID})
		require.NoError(t, err)
		assert.False(t, added)

		items, err := repo.ListForUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestRemoveItem(t *testing.T) {
	repo, db, cleanup := setupRepo(t)
	defer cleanup()

	user := entities.User{Username: "bob", Token: "token-bob"}
	book := entities.Book{Title: "Kidnapped", ISBN: "isbn-k"}
	require.NoError(t, db.DB.Create(&user).Error)
	require.NoError(t, db.DB.Create(&book).Error)

	t.Run("removing an absent item succeeds", func(t *testing.T) {
		assert.NoError(t, repo.RemoveItem(user.ID, book.ID))
	})

	t.Run("removing a present item deletes it", func(t *testing.T) {
		_, err := repo.AddItem(&entities.WishlistItem{UserID: user.ID, BookID: book.ID})
		require.NoError(t, err)
		require.NoError(t, repo.RemoveItem(user.ID, book.ID))

		present, err := repo.Contains(user.ID, book.ID)
		require.NoError(t, err)
		assert.False(t, present)
	})
}

func TestListForUser(t *testing.T) {
	repo, db, cleanup := setupRepo(t)
	defer cleanup()

	user := entities.User{Username: "carol", Token: "token-carol"}
	other := entities.User{Username: "dave", Token: "token-dave"}
	book := entities.Book{Title: "Heidi", ISBN: "isbn-h"}
	require.NoError(t, db.DB.Create(&user).Error)
	require.NoError(t, db.DB.Create(&other).Error)
	require.NoError(t, db.DB.Create(&book).Error)

	_, err := repo.AddItem(&entities.WishlistItem{UserID: user.ID, BookID: book.ID})
	require.NoError(t, err)

	items, err := repo.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Heidi", items[0].Book.Title)

	items, err = repo.ListForUser(other.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
