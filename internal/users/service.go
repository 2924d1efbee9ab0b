// Package users implements registration, login and profile management.
package users

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username is already taken")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameInvalid    = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Store defines the user persistence operations the service needs.
type Store interface {
	CreateUser(user *entities.User) error
	GetUserByID(id uint) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	GetUserByToken(token string) (*entities.User, error)
	UpdateUser(user *entities.User) error
}

// Service handles registration, authentication and profile updates.
type Service struct {
	store  Store
	config config.Auth
}

// NewService creates a new user service.
func NewService(store Store, cfg config.Auth) *Service {
	return &Service{store: store, config: cfg}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Email       string
	Role        entities.UserRole
	SchoolClass string
}

// Register validates the input and creates a user with a hashed password
// and a fresh API token. The unique index on username is authoritative: a
// constraint violation maps to ErrUserExists.
func (s *Service) Register(input RegisterInput) (*entities.User, error) {
	if input.Username == "" {
		return nil, ErrUsernameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(input.Username) {
		return nil, ErrUsernameInvalid
	}
	role := input.Role
	if role == "" {
		role = entities.RoleStudent
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user := &entities.User{
		Username:       input.Username,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		PasswordHash:   string(hash),
		Token:          token,
		Role:           role,
		SchoolClass:    input.SchoolClass,
		ProfilePicture: config.DefaultProfilePicture,
	}
	if err := s.store.CreateUser(user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks the username/password pair and returns the user.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(id uint) (*entities.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Email          *string
	SchoolClass    *string
	ProfilePicture *string
}

// UpdateProfile applies the non-nil fields to the user's profile.
func (s *Service) UpdateProfile(userID uint, update ProfileUpdate) (*entities.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.SchoolClass != nil {
		user.SchoolClass = *update.SchoolClass
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if err := s.store.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
