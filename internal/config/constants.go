package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./bookclub.db"

	// DefaultCoverPicture is the cover reference assigned to books without one
	DefaultCoverPicture = "book_covers/default_cover.png"

	// DefaultProfilePicture is assigned to users without an uploaded picture
	DefaultProfilePicture = "profile_pics/default_pic.jpeg"
)
