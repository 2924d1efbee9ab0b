// Package auth provides API token authentication middleware.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Context keys for user data.
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyUser   = "auth_user"
)

// UserLookup resolves an API token to a user.
type UserLookup interface {
	GetUserByToken(token string) (*entities.User, error)
}

// Middleware authenticates HTTP requests via API tokens.
type Middleware struct {
	users UserLookup
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(users UserLookup) *Middleware {
	return &Middleware{users: users}
}

// Handler returns a Gin handler that resolves the request's token, if any,
// and stores the user in the context. It never rejects requests on its
// own; handlers that need a user call RequireAuth.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if user, err := m.users.GetUserByToken(token); err == nil {
				c.Set(ContextKeyUserID, user.ID)
				c.Set(ContextKeyUser, user)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 when no authenticated user is in the
// context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextKeyUserID); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// extractToken reads the token from the Authorization: Bearer header,
// falling back to X-API-Token.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader("X-API-Token"))
}

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when no user is authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUser extracts the authenticated user from the Gin context.
func GetUser(c *gin.Context) *entities.User {
	if value, exists := c.Get(ContextKeyUser); exists {
		if user, ok := value.(*entities.User); ok {
			return user
		}
	}
	return nil
}
