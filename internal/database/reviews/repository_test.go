package reviews

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

func createUser(t *testing.T, db *database.Database, username string, role entities.UserRole, class string) entities.User {
	t.Helper()
	user := entities.User{Username: username, Token: "token-" + username, Role: role, SchoolClass: class}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createBook(t *testing.T, db *database.Database, title, isbn string) entities.Book {
	t.Helper()
	book := entities.Book{Title: title, ISBN: isbn}
	require.NoError(t, db.DB.Create(&book).Error)
	return book
}

func TestCreateReview(t *testing.T) {
	repo, db, cleanup := setupRepo(t)
	defer cleanup()

	user := createUser(t, db, "alice", entities.RoleStudent, "5A")
	book := createBook(t, db, "Watership Down", "isbn-wd")

	t.Run("first review succeeds", func(t *testing.T) {
		review := &entities.Review{UserID: user.ID, BookID: book.ID, Content: "rabbits", StarsGiven: 5}
		require.NoError(t, repo.CreateReview(review))
		assert.NotZero(t, review.ID)
	})

	t.Run("second review for same pair is a unique violation", func(t *testing.T) {
		err := repo.CreateReview(&entities.Review{UserID: user.ID, BookID: book.ID, Content: "again", StarsGiven: 1})
		require.Error(t, err)
		assert.True(t, database.IsUniqueViolation(err))
	})

	t.Run("failed insert does not affect the stored review", func(t *testing.T) {
		reviews, err := repo.ReviewsForBook(book.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, "rabbits", reviews[0].Content)
		assert.Equal(t, 5, reviews[0].StarsGiven)
	})
}

func TestRatingSummary(t *testing.T) {
	repo, db, cleanup := setupRepo(t)
	defer cleanup()

	book := createBook(t, db, "The Hobbit", "isbn-hobbit")

	t.Run("no reviews yields nil average and zero count", func(t *testing.T) {
		avg, count, err := repo.RatingSummary(book.ID)
		require.NoError(t, err)
		assert.Nil(t, avg)
		assert.Zero(t, count)
	})

	t.Run("average and count reflect all reviews", func(t *testing.T) {
		first := createUser(t, db, "bilbo", entities.RoleStudent, "5A")
		second := createUser(t, db, "thorin", entities.RoleStudent, "5A")
		require.NoError(t, repo.CreateReview(&entities.Review{UserID: first.ID, BookID: book.ID, Content: "grand", StarsGiven: 5}))
		require.NoError(t, repo.CreateReview(&entities.Review{UserID: second.ID, BookID: book.ID, Content: "fine", StarsGiven: 2}))

		avg, count, err := repo.RatingSummary(book.ID)
		require.NoError(t, err)
		require.NotNil(t, avg)
		assert.InDelta(t, 3.5, *avg, 0.0001)
		assert.EqualValues(t, 2, count)
	})
}

func TestReviewsForBook(t *testing.T) {
	repo, db, cleanup := setupRepo(t)
	defer cleanup()

	book := createBook(t, db, "Matilda", "isbn-matilda")
	user := createUser(t, db, "miss-honey", entities.RoleTeacher, "")
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: user.ID, BookID: book.ID, Content: "lovely", StarsGiven: 5}))

	reviews, err := repo.ReviewsForBook(book.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "miss-honey", reviews[0].User.Username)
}

func TestClassLeaderboard(t *testing.T) {
	repo, db, cleanup := setupRepo(t)
	defer cleanup()

	highRated := createBook(t, db, "A", "isbn-a")
	lowRated := createBook(t, db, "B", "isbn-b")
	tiedWithHigh := createBook(t, db, "C", "isbn-c")
	otherClassOnly := createBook(t, db, "D", "isbn-d")

	student1 := createUser(t, db, "s1", entities.RoleStudent, "5A")
	student2 := createUser(t, db, "s2", entities.RoleStudent, "5A")
	otherClass := createUser(t, db, "s3", entities.RoleStudent, "6B")
	teacher := createUser(t, db, "t1", entities.RoleTeacher, "5A")

	// 5A students: highRated avg 4.5, lowRated avg 2, tiedWithHigh avg 4.5
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: student1.ID, BookID: highRated.ID, Content: "x", StarsGiven: 4}))
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: student2.ID, BookID: highRated.ID, Content: "x", StarsGiven: 5}))
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: student1.ID, BookID: lowRated.ID, Content: "x", StarsGiven: 2}))
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: student1.ID, BookID: tiedWithHigh.ID, Content: "x", StarsGiven: 5}))
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: student2.ID, BookID: tiedWithHigh.ID, Content: "x", StarsGiven: 4}))

	// Ratings that must not count: other class, teacher
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: otherClass.ID, BookID: otherClassOnly.ID, Content: "x", StarsGiven: 5}))
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: teacher.ID, BookID: lowRated.ID, Content: "x", StarsGiven: 5}))

	t.Run("aggregates students of the class only", func(t *testing.T) {
		entries, err := repo.ClassLeaderboard("5A", 10)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		// Tied averages fall back to book ID order
		assert.Equal(t, highRated.ID, entries[0].Book.ID)
		assert.InDelta(t, 4.5, entries[0].Average, 0.0001)
		assert.EqualValues(t, 2, entries[0].Count)

		assert.Equal(t, tiedWithHigh.ID, entries[1].Book.ID)
		assert.InDelta(t, 4.5, entries[1].Average, 0.0001)

		assert.Equal(t, lowRated.ID, entries[2].Book.ID)
		assert.InDelta(t, 2.0, entries[2].Average, 0.0001)
		assert.EqualValues(t, 1, entries[2].Count)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		entries, err := repo.ClassLeaderboard("5A", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, highRated.ID, entries[0].Book.ID)
	})

	t.Run("unknown class yields an empty leaderboard", func(t *testing.T) {
		entries, err := repo.ClassLeaderboard("9Z", 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
