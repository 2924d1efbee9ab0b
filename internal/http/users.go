package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/entities"
	"github.com/mrlokans/bookclub/internal/users"
)

// UsersController handles registration, login and profiles.
type UsersController struct {
	service *users.Service
}

// NewUsersController creates a new UsersController.
func NewUsersController(service *users.Service) *UsersController {
	return &UsersController{service: service}
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	SchoolClass string `json:"school_class"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string        `json:"token"`
	User  entities.User `json:"user"`
}

// Register creates a new account and returns its API token.
func (uc *UsersController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.service.Register(users.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Role:        entities.UserRole(req.Role),
		SchoolClass: req.SchoolClass,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserExists):
			respondConflict(c, err.Error())
		case errors.Is(err, users.ErrUsernameRequired),
			errors.Is(err, users.ErrPasswordRequired),
			errors.Is(err, users.ErrUsernameInvalid),
			errors.Is(err, users.ErrInvalidRole):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "register user")
		}
		return
	}

	respondCreated(c, tokenResponse{Token: user.Token, User: *user})
}

// Login verifies credentials and returns the account's API token.
func (uc *UsersController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: user.Token, User: *user})
}

// Me returns the authenticated user's own profile.
func (uc *UsersController) Me(c *gin.Context) {
	user := GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileUpdateRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	SchoolClass    *string `json:"school_class"`
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateMe applies a partial update to the authenticated user's profile.
func (uc *UsersController) UpdateMe(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.service.UpdateProfile(GetUserID(c), users.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		SchoolClass:    req.SchoolClass,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Profile returns another user's public profile.
func (uc *UsersController) Profile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := uc.service.GetUser(id)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}
